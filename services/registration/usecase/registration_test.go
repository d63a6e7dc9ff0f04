package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registration/domain"
)

type fakeRepo struct {
	records    []domain.Registration
	findErr    error
	readErr    error
	appendErr  error
	appendSeen int
}

func (f *fakeRepo) EnsureSchema(ctx context.Context) error {
	return nil
}

func (f *fakeRepo) ReadAll(ctx context.Context) ([]domain.Registration, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.records, nil
}

func (f *fakeRepo) Append(ctx context.Context, req *domain.Registration) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appendSeen++
	req.RegisteredAt = time.Now().UTC()
	f.records = append(f.records, *req)
	return nil
}

func (f *fakeRepo) FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Registration, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	clean := domain.NormalizePhone(phone)
	for i := range f.records {
		existing := domain.NormalizePhone(f.records[i].Phone)
		if existing == clean && existing != "" {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func newUC(repo domain.RegistrationRepo) domain.RegistrationUseCase {
	return NewRegistrationUseCase(repo, 5*time.Second)
}

func TestCheckDuplicateReportsExistingMember(t *testing.T) {
	repo := &fakeRepo{records: []domain.Registration{{
		FullName:     "Amina Yusuf",
		Email:        "amina@example.com",
		Phone:        "08011112222",
		RegisteredAt: time.Date(2025, 3, 9, 14, 30, 0, 0, time.UTC),
	}}}

	result, err := newUC(repo).CheckDuplicateUC(context.Background(), "+2348011112222")
	require.NoError(t, err)
	require.True(t, result.IsDuplicate)
	require.NotNil(t, result.ExistingMember)
	assert.Equal(t, "Amina Yusuf", result.ExistingMember.Name)
	assert.Equal(t, "amina@example.com", result.ExistingMember.Email)
	assert.Equal(t, "Mar 9, 2025, 2:30 PM", result.ExistingMember.RegistrationDate)
}

func TestCheckDuplicateBlankFieldsFallBackToUnknown(t *testing.T) {
	repo := &fakeRepo{records: []domain.Registration{{Phone: "08011112222"}}}

	result, err := newUC(repo).CheckDuplicateUC(context.Background(), "08011112222")
	require.NoError(t, err)
	require.True(t, result.IsDuplicate)
	assert.Equal(t, "Unknown", result.ExistingMember.Name)
	assert.Equal(t, "Unknown", result.ExistingMember.RegistrationDate)
}

func TestCheckDuplicateNoMatch(t *testing.T) {
	result, err := newUC(&fakeRepo{}).CheckDuplicateUC(context.Background(), "08011112222")
	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)
	assert.Nil(t, result.ExistingMember)
}

// A failed lookup must degrade to "not a duplicate" so it can never block
// a registration attempt.
func TestCheckDuplicateDegradesOnStoreFailure(t *testing.T) {
	repo := &fakeRepo{findErr: errors.New("sheet unreachable")}

	result, err := newUC(repo).CheckDuplicateUC(context.Background(), "08011112222")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsDuplicate)
}

func TestSubmitAppendsRecord(t *testing.T) {
	repo := &fakeRepo{}
	req := &domain.Registration{FullName: "Amina Yusuf", Phone: "08011112222"}

	errList := newUC(repo).SubmitUC(context.Background(), req)
	require.Nil(t, errList)
	assert.Equal(t, 1, repo.appendSeen)
}

func TestSubmitSurfacesStoreFailure(t *testing.T) {
	repo := &fakeRepo{appendErr: errors.New("disk full")}

	errList := newUC(repo).SubmitUC(context.Background(), &domain.Registration{})
	require.NotNil(t, errList)
	require.Len(t, *errList, 1)
	assert.Contains(t, (*errList)[0], "disk full")
	assert.Equal(t, 0, repo.appendSeen)
}

func TestStatsCountsBySocietyAndGender(t *testing.T) {
	repo := &fakeRepo{records: []domain.Registration{
		{Society: "Choir", Gender: "Male"},
		{Society: "Choir", Gender: "Female"},
		{Society: "", Gender: ""},
	}}

	stats, err := newUC(repo).StatsUC(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.BySociety["Choir"])
	assert.Equal(t, 1, stats.BySociety["Unknown"])
	assert.Equal(t, 1, stats.ByGender["Male"])
	assert.Equal(t, 1, stats.ByGender["Female"])
	assert.Equal(t, 1, stats.ByGender["Unknown"])
}

func TestStatsSurfacesReadFailure(t *testing.T) {
	repo := &fakeRepo{readErr: errors.New("sheet unreachable")}

	_, err := newUC(repo).StatsUC(context.Background())
	require.Error(t, err)
}
