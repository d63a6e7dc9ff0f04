package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"registration/domain"
)

// sheetRepository persists registrations as a CSV "sheet": the first row
// is the canonical header, every following row is one member in insertion
// order. The mutex is the store's only write serialization; duplicate
// submissions racing on Append are accepted, uniqueness is advisory.
type sheetRepository struct {
	path string
	mu   sync.Mutex
}

func NewSheetRepository(path string) domain.RegistrationRepo {
	return &sheetRepository{path: path}
}

func (sr *sheetRepository) EnsureSchema(ctx context.Context) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	return sr.ensureSchemaLocked()
}

// ensureSchemaLocked creates the sheet with the header row when the file
// is absent or empty. Idempotent: a sheet that already carries rows is
// left untouched.
func (sr *sheetRepository) ensureSchemaLocked() error {
	info, err := os.Stat(sr.path)
	if os.IsNotExist(err) {
		if dir := filepath.Dir(sr.path); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create sheet directory: %w", err)
			}
		}
		return sr.writeHeader()
	}
	if err != nil {
		return fmt.Errorf("could not stat sheet: %w", err)
	}
	if info.Size() == 0 {
		return sr.writeHeader()
	}

	return nil
}

func (sr *sheetRepository) writeHeader() error {
	file, err := os.Create(sr.path)
	if err != nil {
		return fmt.Errorf("could not create sheet: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(domain.SheetHeader); err != nil {
		return fmt.Errorf("could not write sheet header: %w", err)
	}
	writer.Flush()

	return writer.Error()
}

func (sr *sheetRepository) ReadAll(ctx context.Context) ([]domain.Registration, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	return sr.readAllLocked()
}

func (sr *sheetRepository) readAllLocked() ([]domain.Registration, error) {
	if err := sr.ensureSchemaLocked(); err != nil {
		return nil, err
	}

	file, err := os.Open(sr.path)
	if err != nil {
		return nil, fmt.Errorf("could not open sheet: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read sheet: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	// Skip the header row
	records := make([]domain.Registration, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(row))
	}

	return records, nil
}

func (sr *sheetRepository) Append(ctx context.Context, req *domain.Registration) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if err := sr.ensureSchemaLocked(); err != nil {
		return err
	}

	// The store clock wins over anything the client sent
	req.RegisteredAt = time.Now().UTC()
	req.NormalizedPhone = domain.NormalizePhone(req.Phone)

	file, err := os.OpenFile(sr.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open sheet for append: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(recordToRow(req)); err != nil {
		return fmt.Errorf("could not append registration row: %w", err)
	}
	writer.Flush()

	return writer.Error()
}

func (sr *sheetRepository) FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Registration, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	cleanInput := domain.NormalizePhone(phone)

	records, err := sr.readAllLocked()
	if err != nil {
		return nil, err
	}

	for i := range records {
		cleanExisting := domain.NormalizePhone(records[i].Phone)
		// First match wins; empty never matches empty
		if cleanExisting == cleanInput && cleanExisting != "" {
			return &records[i], nil
		}
	}

	return nil, nil
}

func recordToRow(req *domain.Registration) []string {
	return []string{
		req.FullName,
		req.Email,
		req.Phone,
		req.HomeAddress,
		req.Gender,
		req.DateOfBirth,
		req.MaritalStatus,
		req.Society,
		req.RegisteredAt.Format(time.RFC3339),
	}
}

func rowToRecord(row []string) domain.Registration {
	// Tolerate short rows left behind by hand edits
	padded := make([]string, len(domain.SheetHeader))
	copy(padded, row)

	registeredAt, _ := time.Parse(time.RFC3339, padded[8])

	return domain.Registration{
		FullName:        padded[0],
		Email:           padded[1],
		Phone:           padded[2],
		HomeAddress:     padded[3],
		Gender:          padded[4],
		DateOfBirth:     padded[5],
		MaritalStatus:   padded[6],
		Society:         padded[7],
		NormalizedPhone: domain.NormalizePhone(padded[2]),
		RegisteredAt:    registeredAt,
	}
}
