package service_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/testhelpers"
	"github.com/adhub/adhub/backend/internal/types"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*-[a-z0-9]{6}$`)

func jobRequest(title string) *types.JobPostingRequest {
	return &types.JobPostingRequest{Title: title, Description: "We need a short reel for our opening."}
}

func withDeadline(req *types.JobPostingRequest, date, clock string) *types.JobPostingRequest {
	d := models.MustParseDate(date)
	req.DeadlineDate = &d
	if clock != "" {
		req.DeadlineTime = &clock
	}
	return req
}

func TestCreateJobSlugs(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	ctx := context.Background()

	first, err := svc.Create(ctx, owner.ID, jobRequest("Café Opening Reel!"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner.ID, jobRequest("Café Opening Reel!"))
	require.NoError(t, err)

	assert.Regexp(t, slugPattern, first.Slug)
	assert.Contains(t, first.Slug, "cafe-opening-reel-")
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Equal(t, "acme_shop", first.OwnerUsername)
	assert.Equal(t, "PT", first.OwnerCountry)
}

func TestCreateJobRules(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	creator := testhelpers.CreateCreator(t, db, "jane_doe")
	ctx := context.Background()

	_, err := svc.Create(ctx, creator.ID, jobRequest("Reel"))
	assert.ErrorIs(t, err, service.ErrWrongUserType)

	_, err = svc.Create(ctx, owner.ID, jobRequest(""))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Create(ctx, owner.ID, withDeadline(jobRequest("Reel"), "2025-02-04", ""))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Create(ctx, owner.ID, withDeadline(jobRequest("Reel"), "2025-02-10", "25:99"))
	assert.ErrorIs(t, err, service.ErrValidation)

	clock := "17:30"
	_, err = svc.Create(ctx, owner.ID, &types.JobPostingRequest{Title: "Reel", Description: "x", DeadlineTime: &clock})
	assert.ErrorIs(t, err, service.ErrValidation)

	job, err := svc.Create(ctx, owner.ID, withDeadline(jobRequest("Reel"), "2025-02-05", "17:30"))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-05", job.DeadlineDate.String())
}

func TestUpdateAndDeleteJobAreOwnerScoped(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	rival := testhelpers.CreateBusinessOwner(t, db, "rival_shop")
	ctx := context.Background()

	job, err := svc.Create(ctx, owner.ID, jobRequest("Reel"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, rival.ID, job.Slug, jobRequest("Hijacked"))
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, rival.ID, job.Slug), service.ErrForbidden)

	updated, err := svc.Update(ctx, owner.ID, job.Slug, jobRequest("Longer reel"))
	require.NoError(t, err)
	assert.Equal(t, "Longer reel", updated.Title)
	assert.Equal(t, job.Slug, updated.Slug)

	require.NoError(t, svc.Delete(ctx, owner.ID, job.Slug))
	_, err = svc.GetBySlug(ctx, job.Slug, "")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListJobs(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	clock := testhelpers.FixedClock("2025-02-05")
	svc := service.NewJobService(db, clock, nil)
	lisbon := testhelpers.CreateBusinessOwner(t, db, "lisbon_cafe")
	tokyo := testhelpers.CreateBusinessOwner(t, db, "tokyo_bar", testhelpers.WithCountry("JP"), testhelpers.WithCity("Tokyo"))
	ctx := context.Background()

	open, err := svc.Create(ctx, lisbon.ID, jobRequest("Brunch reel"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, tokyo.ID, jobRequest("Cocktail story"))
	require.NoError(t, err)
	closing, err := svc.Create(ctx, lisbon.ID, withDeadline(jobRequest("Morning story"), "2025-02-05", "09:00"))
	require.NoError(t, err)

	all, err := svc.List(ctx, types.JobFilter{}, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "a posting whose deadline passed at 09:00 today is closed at noon")

	withClosed, err := svc.List(ctx, types.JobFilter{IncludeClosed: true}, "")
	require.NoError(t, err)
	require.Len(t, withClosed, 3)
	for _, v := range withClosed {
		assert.Equal(t, v.ID == closing.ID, v.IsClosed)
	}

	japan, err := svc.List(ctx, types.JobFilter{Country: "jp"}, "")
	require.NoError(t, err)
	require.Len(t, japan, 1)
	assert.Equal(t, "Cocktail story", japan[0].Title)

	brunch, err := svc.List(ctx, types.JobFilter{Query: "BRUNCH", City: "lisbon"}, "")
	require.NoError(t, err)
	require.Len(t, brunch, 1)
	assert.Equal(t, open.ID, brunch[0].ID)

	mine, err := svc.ListByOwner(ctx, lisbon.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].IsOwner)
}

func TestSaveIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	creator := testhelpers.CreateCreator(t, db, "jane_doe")
	ctx := context.Background()
	job, err := svc.Create(ctx, owner.ID, jobRequest("Reel"))
	require.NoError(t, err)

	require.NoError(t, svc.Save(ctx, creator.ID, job.Slug))
	require.NoError(t, svc.Save(ctx, creator.ID, job.Slug))

	saved, err := svc.ListSaved(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].IsSaved)

	view, err := svc.GetBySlug(ctx, job.Slug, creator.ID)
	require.NoError(t, err)
	assert.True(t, view.IsSaved)
	assert.False(t, view.HasApplied)

	require.NoError(t, svc.Unsave(ctx, creator.ID, job.Slug))
	require.NoError(t, svc.Unsave(ctx, creator.ID, job.Slug))
	saved, err = svc.ListSaved(ctx, creator.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	assert.ErrorIs(t, svc.Save(ctx, owner.ID, job.Slug), service.ErrWrongUserType)
	assert.ErrorIs(t, svc.Save(ctx, creator.ID, "missing-abcdef"), service.ErrNotFound)
}

func TestApply(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	rival := testhelpers.CreateBusinessOwner(t, db, "rival_shop")
	creator := testhelpers.CreateCreator(t, db, "jane_doe")
	ctx := context.Background()
	job, err := svc.Create(ctx, owner.ID, withDeadline(jobRequest("Reel"), "2025-02-05", "18:00"))
	require.NoError(t, err)

	application, err := svc.Apply(ctx, creator.ID, job.Slug)
	require.NoError(t, err)
	assert.Equal(t, job.ID, application.JobPostingID)

	_, err = svc.Apply(ctx, creator.ID, job.Slug)
	assert.ErrorIs(t, err, service.ErrConflict)

	mine, err := svc.ListApplications(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].JobPosting)
	assert.Equal(t, job.Slug, mine[0].JobPosting.Slug)

	applicants, err := svc.ListApplicants(ctx, owner.ID, job.Slug)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	require.NotNil(t, applicants[0].Profile)
	assert.Equal(t, "jane_doe", applicants[0].Profile.UsernameValue())

	_, err = svc.ListApplicants(ctx, rival.ID, job.Slug)
	assert.ErrorIs(t, err, service.ErrForbidden)

	view, err := svc.GetBySlug(ctx, job.Slug, creator.ID)
	require.NoError(t, err)
	assert.True(t, view.HasApplied)
	assert.False(t, view.IsClosed)
}

func TestApplyAfterDeadline(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	creator := testhelpers.CreateCreator(t, db, "jane_doe")
	ctx := context.Background()

	job, err := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil).
		Create(ctx, owner.ID, withDeadline(jobRequest("Reel"), "2025-02-06", ""))
	require.NoError(t, err)

	onDeadlineDay := service.NewJobService(db, testhelpers.FixedClock("2025-02-06"), nil)
	_, err = onDeadlineDay.Apply(ctx, creator.ID, job.Slug)
	require.NoError(t, err, "a date-only deadline stays open for the whole day")

	late := service.NewJobService(db, testhelpers.FixedClock("2025-02-07"), nil)
	other := testhelpers.CreateCreator(t, db, "john_doe")
	_, err = late.Apply(ctx, other.ID, job.Slug)
	assert.ErrorIs(t, err, service.ErrDeadlinePassed)
}

func TestDeleteJobRemovesActivity(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	creator := testhelpers.CreateCreator(t, db, "jane_doe")
	ctx := context.Background()
	job, err := svc.Create(ctx, owner.ID, jobRequest("Reel"))
	require.NoError(t, err)
	require.NoError(t, svc.Save(ctx, creator.ID, job.Slug))
	_, err = svc.Apply(ctx, creator.ID, job.Slug)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID, job.Slug))

	var saved, applied int64
	require.NoError(t, db.Model(&models.SavedJob{}).Count(&saved).Error)
	require.NoError(t, db.Model(&models.JobApplication{}).Count(&applied).Error)
	assert.Zero(t, saved)
	assert.Zero(t, applied)
}

func TestListJobsSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "lisbon_cafe")
	ctx := context.Background()

	discount, err := svc.Create(ctx, owner.ID, jobRequest("50% off launch reel"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner.ID, jobRequest("500 coffees giveaway"))
	require.NoError(t, err)

	found, err := svc.List(ctx, types.JobFilter{Query: "50%"}, "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, discount.ID, found[0].ID)

	none, err := svc.List(ctx, types.JobFilter{Query: "%"}, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
