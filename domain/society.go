package domain

// SocietyCatalog lists the parish societies offered on the registration
// form. "Other" stays last; values outside the catalog are kept as
// free-form text rather than rejected.
var SocietyCatalog = []string{
	"Choir",
	"Ushering",
	"Technical/Sound",
	"Children's Society",
	"Youth Society",
	"Liturgy Committee",
	"Evangelization",
	"Social Services",
	"Finance Committee",
	"Maintenance",
	"Catholic Women Organization (CWO)",
	"Catholic Men Organization (CMO)",
	"Legion of Mary",
	"Sacred Heart Society",
	"Other",
}

func KnownSociety(name string) bool {
	for _, s := range SocietyCatalog {
		if s == name {
			return true
		}
	}
	return false
}
