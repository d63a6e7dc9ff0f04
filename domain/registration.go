package domain

import (
	"context"
	"time"
)

// SheetName is the tab holding one row per registered member.
const SheetName = "Registrations"

// SheetHeader is the canonical column order. Downstream readers index
// columns positionally, so this order must never change once rows exist.
var SheetHeader = []string{
	"Full Name",
	"Email",
	"Phone Number",
	"Home Address",
	"Gender",
	"Date of Birth",
	"Marital Status",
	"Society",
	"Registration Date",
}

type Registration struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"-"`
	FullName        string    `gorm:"type:varchar(150);not null" json:"fullName" valid:"required~Full name is required"`
	Email           string    `gorm:"type:varchar(150)" json:"email" valid:"email~Please enter a valid email address,optional"`
	Phone           string    `gorm:"type:varchar(20);not null" json:"phone" valid:"required~Phone number is required"`
	HomeAddress     string    `gorm:"type:text;not null" json:"homeAddress" valid:"required~Home address is required"`
	Gender          string    `gorm:"type:varchar(10);not null" json:"gender" valid:"required~Gender is required,in(Male|Female)~Invalid gender"`
	DateOfBirth     string    `gorm:"type:varchar(20);not null" json:"dateOfBirth" valid:"required~Date of birth is required"`
	MaritalStatus   string    `gorm:"type:varchar(10);not null" json:"maritalStatus" valid:"required~Marital status is required,in(Single|Married|Other)~Invalid marital status"`
	Society         string    `gorm:"type:varchar(100);not null" json:"society" valid:"required~Please select a society interest"`
	NormalizedPhone string    `gorm:"type:varchar(20);index" json:"-"`
	RegisteredAt    time.Time `gorm:"autoCreateTime" json:"registrationDate"`
}

type ExistingMember struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registrationDate"`
}

type DuplicateCheck struct {
	IsDuplicate    bool            `json:"isDuplicate"`
	ExistingMember *ExistingMember `json:"existingMember,omitempty"`
}

type RegistrationStats struct {
	Total     int            `json:"total"`
	BySociety map[string]int `json:"by_society"`
	ByGender  map[string]int `json:"by_gender"`
}

type RegistrationRepo interface {
	EnsureSchema(ctx context.Context) error
	ReadAll(ctx context.Context) ([]Registration, error)
	Append(ctx context.Context, req *Registration) error
	FindByNormalizedPhone(ctx context.Context, phone string) (*Registration, error)
}

type RegistrationUseCase interface {
	CheckDuplicateUC(ctx context.Context, phone string) (*DuplicateCheck, error)
	SubmitUC(ctx context.Context, req *Registration) *[]string
	StatsUC(ctx context.Context) (*RegistrationStats, error)
}
