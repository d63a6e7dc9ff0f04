package usecase

import (
	"context"
	"fmt"
	"time"

	"registration/domain"
)

type registrationUseCase struct {
	repo    domain.RegistrationRepo
	TimeOut time.Duration
}

func NewRegistrationUseCase(repo domain.RegistrationRepo, to time.Duration) domain.RegistrationUseCase {
	return &registrationUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

// CheckDuplicateUC looks up the first registration whose normalized phone
// matches the input. The check is advisory: on any store failure it
// degrades to "not a duplicate" and hands the error back for logging, so
// a broken lookup can never block a legitimate registration.
func (ruc *registrationUseCase) CheckDuplicateUC(ctx context.Context, phone string) (*domain.DuplicateCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, ruc.TimeOut)
	defer cancel()

	record, err := ruc.repo.FindByNormalizedPhone(ctx, phone)
	if err != nil {
		return &domain.DuplicateCheck{IsDuplicate: false}, err
	}
	if record == nil {
		return &domain.DuplicateCheck{IsDuplicate: false}, nil
	}

	name := record.FullName
	if name == "" {
		name = "Unknown"
	}

	return &domain.DuplicateCheck{
		IsDuplicate: true,
		ExistingMember: &domain.ExistingMember{
			Name:             name,
			Email:            record.Email,
			RegistrationDate: formatRegistrationDate(record.RegisteredAt),
		},
	}, nil
}

func (ruc *registrationUseCase) SubmitUC(ctx context.Context, req *domain.Registration) *[]string {
	ctx, cancel := context.WithTimeout(ctx, ruc.TimeOut)
	defer cancel()

	if err := ruc.repo.Append(ctx, req); err != nil {
		return &[]string{fmt.Sprintf("could not append registration: %v", err)}
	}

	return nil
}

func (ruc *registrationUseCase) StatsUC(ctx context.Context) (*domain.RegistrationStats, error) {
	ctx, cancel := context.WithTimeout(ctx, ruc.TimeOut)
	defer cancel()

	records, err := ruc.repo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.RegistrationStats{
		Total:     len(records),
		BySociety: map[string]int{},
		ByGender:  map[string]int{},
	}

	for i := range records {
		society := records[i].Society
		if society == "" {
			society = "Unknown"
		}
		gender := records[i].Gender
		if gender == "" {
			gender = "Unknown"
		}

		stats.BySociety[society]++
		stats.ByGender[gender]++
	}

	return stats, nil
}

func formatRegistrationDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("Jan 2, 2006, 3:04 PM")
}
