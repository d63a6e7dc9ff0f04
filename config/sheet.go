package config

import "os"

// GetStoreDriver selects the record store backend: "sheet" (CSV file,
// the default) or "postgres".
func GetStoreDriver() string {
	v := os.Getenv("STORE_DRIVER")
	if v == "" {
		return "sheet"
	}

	return v
}

func GetSheetPath() string {
	v := os.Getenv("SHEET_PATH")
	if v == "" {
		return "registrations.csv"
	}

	return v
}
