package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"registration/domain"
)

// postgresRepository is the indexed alternative to the sheet store: the
// normalized phone is persisted in its own indexed column so the duplicate
// lookup does not scan the whole table.
type postgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(database *gorm.DB) domain.RegistrationRepo {
	return &postgresRepository{
		db: database,
	}
}

func (pr *postgresRepository) EnsureSchema(ctx context.Context) error {
	if err := pr.db.WithContext(ctx).AutoMigrate(&domain.Registration{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (pr *postgresRepository) ReadAll(ctx context.Context) ([]domain.Registration, error) {
	var records []domain.Registration

	err := pr.db.WithContext(ctx).Order("id").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("could not fetch registrations: %w", err)
	}

	return records, nil
}

func (pr *postgresRepository) Append(ctx context.Context, req *domain.Registration) error {
	req.RegisteredAt = time.Now().UTC()
	req.NormalizedPhone = domain.NormalizePhone(req.Phone)

	if err := pr.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("could not insert registration: %w", err)
	}

	return nil
}

func (pr *postgresRepository) FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Registration, error) {
	cleanInput := domain.NormalizePhone(phone)
	if cleanInput == "" {
		return nil, nil
	}

	var record domain.Registration
	err := pr.db.WithContext(ctx).
		Where("normalized_phone = ?", cleanInput).
		Order("id").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking registration telephone: %w", err)
	}

	return &record, nil
}
