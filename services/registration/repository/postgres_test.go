package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"registration/domain"
)

type PostgresStoreSuite struct {
	suite.Suite
	store domain.RegistrationRepo
	mock  sqlmock.Sqlmock
	ctx   context.Context
}

func (s *PostgresStoreSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.mock = mock

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	s.Require().NoError(err)

	s.store = NewPostgresRepository(gdb)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

// TestFindGuardsEmptyInput verifies inputs that normalize to "" never
// reach the database: empty must not match empty, so there is nothing
// to query.
func (s *PostgresStoreSuite) TestFindGuardsEmptyInput() {
	found, err := s.store.FindByNormalizedPhone(s.ctx, "")
	s.Require().NoError(err)
	s.Nil(found)

	found, err = s.store.FindByNormalizedPhone(s.ctx, "call me")
	s.Require().NoError(err)
	s.Nil(found)
}

// TestFindQueriesNormalizedForm verifies the lookup hits the indexed
// column with the normalized spelling, not the raw input.
func (s *PostgresStoreSuite) TestFindQueriesNormalizedForm() {
	rows := sqlmock.NewRows([]string{"id", "full_name", "phone", "normalized_phone"}).
		AddRow(1, "Amina Yusuf", "08011112222", "08011112222")

	s.mock.ExpectQuery(`SELECT .+ FROM "registrations" WHERE normalized_phone =`).
		WithArgs("08011112222", 1).
		WillReturnRows(rows)

	found, err := s.store.FindByNormalizedPhone(s.ctx, "+2348011112222")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("Amina Yusuf", found.FullName)
}

func (s *PostgresStoreSuite) TestFindNoMatchReturnsNil() {
	s.mock.ExpectQuery(`SELECT .+ FROM "registrations" WHERE normalized_phone =`).
		WithArgs("08099990000", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	found, err := s.store.FindByNormalizedPhone(s.ctx, "08099990000")
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *PostgresStoreSuite) TestFindSurfacesQueryFailure() {
	s.mock.ExpectQuery(`SELECT .+ FROM "registrations" WHERE normalized_phone =`).
		WithArgs("08011112222", 1).
		WillReturnError(errors.New("connection refused"))

	found, err := s.store.FindByNormalizedPhone(s.ctx, "08011112222")
	s.Require().Error(err)
	s.Contains(err.Error(), "connection refused")
	s.Nil(found)
}

// TestAppendStampsClockAndNormalizedPhone verifies the insert carries a
// store-assigned timestamp and the normalized phone for the index.
func (s *PostgresStoreSuite) TestAppendStampsClockAndNormalizedPhone() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectCommit()

	req := &domain.Registration{
		FullName:      "Amina Yusuf",
		Phone:         "+2348011112222",
		HomeAddress:   "12 Cathedral Road, Bauchi",
		Gender:        "Female",
		DateOfBirth:   "1990-04-12",
		MaritalStatus: "Single",
		Society:       "Choir",
		RegisteredAt:  time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.store.Append(s.ctx, req))
	s.Equal("08011112222", req.NormalizedPhone)
	s.True(req.RegisteredAt.After(time.Now().UTC().Add(-time.Minute)))
}

func (s *PostgresStoreSuite) TestReadAllOrdersByInsertion() {
	rows := sqlmock.NewRows([]string{"id", "full_name", "phone"}).
		AddRow(1, "Amina Yusuf", "08011112222").
		AddRow(2, "John Danladi", "08033334444")

	s.mock.ExpectQuery(`SELECT .+ FROM "registrations" ORDER BY id`).
		WillReturnRows(rows)

	records, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("Amina Yusuf", records[0].FullName)
	s.Equal("John Danladi", records[1].FullName)
}
