package service_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/testhelpers"
	"github.com/adhub/adhub/backend/internal/types"
)

// memoryStore is an in-memory ObjectStore.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (m *memoryStore) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
		}
	}
	return nil
}

func (m *memoryStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for key := range m.objects {
		out = append(out, key)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func setupRequest(username string, userType models.UserType) *types.ProfileSetupRequest {
	return &types.ProfileSetupRequest{
		Username:     username,
		FirstName:    "Jane",
		LastName:     "Doe",
		UserType:     userType,
		City:         "Lisbon",
		Country:      "pt",
		Bio:          "Travel and food",
		InstagramURL: "https://www.instagram.com/jane",
	}
}

func TestProfileBootstrapIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()

	first, err := svc.Bootstrap(ctx, "user_1", "jane@example.com", "Jane", "Doe", "")
	require.NoError(t, err)
	second, err := svc.Bootstrap(ctx, "user_1", "other@example.com", "X", "Y", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "jane@example.com", second.Email)
	assert.False(t, second.IsProfileCompleted)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteSetup(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()
	_, err := svc.Bootstrap(ctx, "user_1", "jane@example.com", "", "", "")
	require.NoError(t, err)

	profile, err := svc.CompleteSetup(ctx, "user_1", setupRequest("jane_doe", models.UserTypeContentCreator))
	require.NoError(t, err)
	assert.True(t, profile.IsProfileCompleted)
	assert.Equal(t, "jane_doe", profile.UsernameValue())
	assert.Equal(t, "PT", profile.Country)
	assert.True(t, profile.IsCreator())
	assert.True(t, profile.IsPublic)
	assert.True(t, profile.OpenToCollaboration)
}

func TestCompleteSetupRejectsCompletedProfile(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()
	_, err := svc.Bootstrap(ctx, "user_1", "jane@example.com", "", "", "")
	require.NoError(t, err)
	_, err = svc.CompleteSetup(ctx, "user_1", setupRequest("jane_doe", models.UserTypeContentCreator))
	require.NoError(t, err)

	again := setupRequest("jane_doe", models.UserTypeContentCreator)
	again.Bio = "Rewritten"
	again.IsPublic = ptr(false)
	_, err = svc.CompleteSetup(ctx, "user_1", again)
	assert.ErrorIs(t, err, service.ErrConflict)

	stored, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Travel and food", stored.Bio)
	assert.True(t, stored.IsPublic)
}

func TestCompleteSetupRejectsTakenUsername(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()
	testhelpers.CreateCreator(t, db, "Jane_Doe")
	_, err := svc.Bootstrap(ctx, "user_2", "x@example.com", "", "", "")
	require.NoError(t, err)

	_, err = svc.CompleteSetup(ctx, "user_2", setupRequest("jane_doe", models.UserTypeContentCreator))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCompleteSetupValidation(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()
	_, err := svc.Bootstrap(ctx, "user_1", "jane@example.com", "", "", "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		edit  func(*types.ProfileSetupRequest)
		field string
	}{
		{"short username", func(r *types.ProfileSetupRequest) { r.Username = "ab" }, "username"},
		{"unknown country", func(r *types.ProfileSetupRequest) { r.Country = "XX" }, "country"},
		{"bad instagram host", func(r *types.ProfileSetupRequest) { r.InstagramURL = "https://evil.com/jane" }, "instagram_url"},
		{"plain http link", func(r *types.ProfileSetupRequest) { r.InstagramURL = "http://instagram.com/jane" }, "instagram_url"},
		{"long bio", func(r *types.ProfileSetupRequest) { r.Bio = strings.Repeat("a", 501) }, "bio"},
		{"bad user type", func(r *types.ProfileSetupRequest) { r.UserType = "admin" }, "user_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := setupRequest("jane_doe", models.UserTypeContentCreator)
			tt.edit(req)
			_, err := svc.CompleteSetup(ctx, "user_1", req)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)
			var fe *service.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestBioLimitAppliesToCreatorsOnly(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()
	creator := testhelpers.CreateCreator(t, db, "creator_one")
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	long := strings.Repeat("é", 501)

	_, err := svc.Update(ctx, creator.ID, &types.UpdateProfileRequest{Bio: ptr(long)})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Update(ctx, creator.ID, &types.UpdateProfileRequest{Bio: ptr(strings.Repeat("é", 500))})
	assert.NoError(t, err)

	updated, err := svc.Update(ctx, owner.ID, &types.UpdateProfileRequest{Bio: ptr(long)})
	require.NoError(t, err)
	assert.Equal(t, long, updated.Bio)
}

func TestUpdateRejectsUserTypeChange(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	creator := testhelpers.CreateCreator(t, db, "creator_one")

	_, err := svc.Update(context.Background(), creator.ID, &types.UpdateProfileRequest{UserType: ptr("business_owner")})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Update(context.Background(), creator.ID, &types.UpdateProfileRequest{UserType: ptr("content_creator")})
	assert.NoError(t, err)
}

func TestUpdateRefreshesPostingSnapshots(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	profiles := service.NewProfileService(db, nil, nil)
	jobs := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")

	job, err := jobs.Create(ctx, owner.ID, &types.JobPostingRequest{Title: "Reel for a cafe", Description: "Short video"})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", job.OwnerCity)

	_, err = profiles.Update(ctx, owner.ID, &types.UpdateProfileRequest{
		Username: ptr("acme_studio"),
		City:     ptr("Porto"),
	})
	require.NoError(t, err)

	view, err := jobs.GetBySlug(ctx, job.Slug, "")
	require.NoError(t, err)
	assert.Equal(t, "acme_studio", view.OwnerUsername)
	assert.Equal(t, "Porto", view.OwnerCity)
}

func TestUpdateSettings(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()
	creator := testhelpers.CreateCreator(t, db, "creator_one")
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")

	updated, err := svc.UpdateSettings(ctx, creator.ID, &types.UpdateSettingsRequest{
		IsPublic: ptr(false),
		Phone:    ptr("+351 912 345 678"),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
	assert.True(t, updated.OpenToCollaboration)
	assert.Equal(t, "+351 912 345 678", updated.Phone)

	_, err = svc.UpdateSettings(ctx, owner.ID, &types.UpdateSettingsRequest{IsPublic: ptr(true)})
	assert.ErrorIs(t, err, service.ErrWrongUserType)

	_, err = svc.UpdateSettings(ctx, owner.ID, &types.UpdateSettingsRequest{Email: ptr("not-an-email")})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUsernameAvailable(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)
	ctx := context.Background()
	creator := testhelpers.CreateCreator(t, db, "jane_doe")

	free, err := svc.UsernameAvailable(ctx, "JANE_DOE", "someone_else")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = svc.UsernameAvailable(ctx, "jane_doe", creator.ID)
	require.NoError(t, err)
	assert.True(t, free)

	_, err = svc.UsernameAvailable(ctx, "no spaces", "")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestGetMissingProfile(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewProfileService(db, nil, nil)

	_, err := svc.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteProfileRemovesOwnedRowsAndPhotos(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	store := newMemoryStore()
	svc := service.NewProfileService(db, store, nil)
	creator := testhelpers.CreateCreator(t, db, "creator_one")
	other := testhelpers.CreateCreator(t, db, "creator_two")
	testhelpers.CreateSchedule(t, db, creator.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")
	testhelpers.CreateSchedule(t, db, other.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")
	_, err := store.Put(ctx, service.PhotoPrefix(creator.ID)+"avatar-1.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.NoError(t, err)
	_, err = store.Put(ctx, service.PhotoPrefix(other.ID)+"avatar-1.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, creator.ID))

	_, err = svc.Get(ctx, creator.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var schedules int64
	require.NoError(t, db.Model(&models.TravelSchedule{}).Count(&schedules).Error)
	assert.Equal(t, int64(1), schedules)
	assert.Equal(t, []string{service.PhotoPrefix(other.ID) + "avatar-1.jpg"}, store.keys())

	assert.ErrorIs(t, svc.Delete(ctx, creator.ID), service.ErrNotFound)
}
