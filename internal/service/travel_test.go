package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/testhelpers"
	"github.com/adhub/adhub/backend/internal/types"
)

func scheduleRequest(start, end string) *types.TravelScheduleRequest {
	return &types.TravelScheduleRequest{
		StartDate:          models.MustParseDate(start),
		EndDate:            models.MustParseDate(end),
		DestinationCity:    "Tokyo",
		DestinationCountry: "jp",
	}
}

func countSchedules(t *testing.T, svc service.ITravelService, profileID string) int {
	t.Helper()
	views, err := svc.ListOwn(context.Background(), profileID)
	require.NoError(t, err)
	return len(views)
}

func TestTravelCreateAndList(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTravelService(db, testhelpers.FixedClock("2025-02-05"), nil)
	ctx := context.Background()
	creator := testhelpers.CreateCreator(t, db, "jane_doe")

	later, err := svc.Create(ctx, creator.ID, scheduleRequest("2025-06-01", "2025-06-10"))
	require.NoError(t, err)
	assert.Equal(t, "upcoming", later.State)
	assert.False(t, later.IsTraveling)

	soon, err := svc.Create(ctx, creator.ID, scheduleRequest("2025-03-01", "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "visible", soon.State)
	assert.True(t, soon.IsTraveling)
	assert.Equal(t, "JP", soon.DestinationCountry)

	views, err := svc.ListOwn(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, soon.ID, views[0].ID)
	assert.Equal(t, later.ID, views[1].ID)
}

func TestTravelCreateRejectsBadDatesBeforeStore(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTravelService(db, testhelpers.FixedClock("2025-02-05"), nil)

	// The profile does not exist: validation must fail before any lookup.
	_, err := svc.Create(context.Background(), "missing", scheduleRequest("2025-03-10", "2025-03-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)
	var fe *service.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "end_date", fe.Field)

	_, err = svc.Create(context.Background(), "missing", scheduleRequest("2025-02-04", "2025-03-01"))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "start_date", fe.Field)

	req := scheduleRequest("2025-03-01", "2025-03-02")
	req.DestinationCountry = "ZZ"
	_, err = svc.Create(context.Background(), "missing", req)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "destination_country", fe.Field)
}

func TestTravelCreateRequiresCreator(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTravelService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")

	_, err := svc.Create(context.Background(), owner.ID, scheduleRequest("2025-03-01", "2025-03-10"))
	assert.ErrorIs(t, err, service.ErrWrongUserType)
}

func TestTravelUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTravelService(db, testhelpers.FixedClock("2025-02-05"), nil)
	ctx := context.Background()
	jane := testhelpers.CreateCreator(t, db, "jane_doe")
	mallory := testhelpers.CreateCreator(t, db, "mallory")
	trip := testhelpers.CreateSchedule(t, db, jane.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")

	_, err := svc.Update(ctx, mallory.ID, trip.ID, scheduleRequest("2025-04-01", "2025-04-02"))
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, mallory.ID, trip.ID), service.ErrNotFound)

	updated, err := svc.Update(ctx, jane.ID, trip.ID, scheduleRequest("2025-04-01", "2025-04-02"))
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", updated.StartDate.String())
	assert.Equal(t, "upcoming", updated.State)

	require.NoError(t, svc.Delete(ctx, jane.ID, trip.ID))
	assert.ErrorIs(t, svc.Delete(ctx, jane.ID, uuid.New()), service.ErrNotFound)
	assert.Zero(t, countSchedules(t, svc, jane.ID))
}

func TestSweepBoundary(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTravelService(db, testhelpers.FixedClock("2025-03-15"), nil)
	creator := testhelpers.CreateCreator(t, db, "jane_doe")
	twoDaysAgo := testhelpers.CreateSchedule(t, db, creator.ID, "2025-03-01", "2025-03-13", "Tokyo", "JP")
	yesterday := testhelpers.CreateSchedule(t, db, creator.ID, "2025-03-01", "2025-03-14", "Osaka", "JP")

	removed, err := svc.SweepExpired(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var remaining []models.TravelSchedule
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, yesterday.ID, remaining[0].ID)
	assert.NotEqual(t, twoDaysAgo.ID, remaining[0].ID)

	removed, err = svc.SweepExpired(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSweepScopedToProfile(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTravelService(db, testhelpers.FixedClock("2025-03-15"), nil)
	jane := testhelpers.CreateCreator(t, db, "jane_doe")
	john := testhelpers.CreateCreator(t, db, "john_doe")
	testhelpers.CreateSchedule(t, db, jane.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")
	testhelpers.CreateSchedule(t, db, john.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")

	removed, err := svc.SweepExpired(context.Background(), &jane.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	require.NoError(t, db.Model(&models.TravelSchedule{}).Where("profile_id = ?", john.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListOwnSweepsExpired(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewTravelService(db, testhelpers.FixedClock("2025-03-15"), nil)
	jane := testhelpers.CreateCreator(t, db, "jane_doe")
	testhelpers.CreateSchedule(t, db, jane.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")
	testhelpers.CreateSchedule(t, db, jane.ID, "2025-03-14", "2025-03-20", "Kyoto", "JP")

	views, err := svc.ListOwn(context.Background(), jane.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Kyoto", views[0].DestinationCity)
	assert.Equal(t, "active", views[0].State)
	assert.Equal(t, "Traveling now", views[0].Label)
}

func TestJaneDoeScheduleLifecycle(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	jane := testhelpers.CreateCreator(t, db, "jane_doe")
	testhelpers.CreateSchedule(t, db, jane.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")

	before := service.NewTravelService(db, testhelpers.FixedClock("2025-02-05"), nil)
	views, err := before.ListOwn(context.Background(), jane.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "visible", views[0].State)
	assert.True(t, views[0].IsTraveling)

	after := service.NewTravelService(db, testhelpers.FixedClock("2025-03-15"), nil)
	assert.Zero(t, countSchedules(t, after, jane.ID))
}
