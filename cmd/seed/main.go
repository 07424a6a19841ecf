package main

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/adhub/adhub/backend/config"
	"github.com/adhub/adhub/backend/internal/database"
	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

type seedProfile struct {
	id    string
	email string
	setup types.ProfileSetupRequest
	trips []trip
	jobs  []job
}

// trip offsets are days from today.
type trip struct {
	start, end    int
	city, country string
}

type job struct {
	title, description string
	deadlineInDays     *int
}

func days(n int) *int { return &n }

func yes() *bool { t := true; return &t }

var demoProfiles = []seedProfile{
	{
		id:    "seed_creator_maya",
		email: "maya.lopez@example.com",
		setup: types.ProfileSetupRequest{
			Username:            "mayalopez",
			FirstName:           "Maya",
			LastName:            "Lopez",
			UserType:            models.UserTypeContentCreator,
			City:                "Lisbon",
			Country:             "PT",
			Bio:                 "Food and travel reels. Always hunting for the best pastel de nata.",
			InstagramURL:        "https://instagram.com/mayalopez",
			IsPublic:            yes(),
			OpenToCollaboration: yes(),
		},
		trips: []trip{
			{start: -2, end: 3, city: "Porto", country: "PT"},
			{start: 20, end: 27, city: "Barcelona", country: "ES"},
		},
	},
	{
		id:    "seed_creator_jonas",
		email: "jonas.berg@example.com",
		setup: types.ProfileSetupRequest{
			Username:   "jonasberg",
			FirstName:  "Jonas",
			LastName:   "Berg",
			UserType:   models.UserTypeContentCreator,
			City:       "Berlin",
			Country:    "DE",
			Bio:        "Cycling, coffee and city guides.",
			YouTubeURL: "https://youtube.com/@jonasberg",
			IsPublic:   yes(),
		},
		trips: []trip{
			{start: 5, end: 9, city: "Lisbon", country: "PT"},
		},
	},
	{
		id:    "seed_owner_cafe",
		email: "hello@cafeaurora.example.com",
		setup: types.ProfileSetupRequest{
			Username:  "cafeaurora",
			FirstName: "Ana",
			LastName:  "Silva",
			UserType:  models.UserTypeBusinessOwner,
			City:      "Lisbon",
			Country:   "PT",
		},
		jobs: []job{
			{title: "Brunch menu launch reel", description: "Looking for a food creator to film our new weekend brunch menu.", deadlineInDays: days(14)},
			{title: "Summer terrace photos", description: "A short shoot of the terrace at golden hour.", deadlineInDays: days(2)},
			{title: "Ongoing coffee content", description: "Monthly posts featuring our seasonal roasts."},
		},
	},
}

func main() {
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	defer logger.Sync()

	if err := run(context.Background(), logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed complete")
}

func run(ctx context.Context, logger *logging.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	db, err := database.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, database.DefaultMigrationsDir); err != nil {
		return err
	}

	profiles := service.NewProfileService(db.DB, nil, logger)
	travel := service.NewTravelService(db.DB, nil, logger)
	jobs := service.NewJobService(db.DB, nil, logger)
	today := models.DateOf(time.Now().UTC())

	for _, p := range demoProfiles {
		profile, err := profiles.Bootstrap(ctx, p.id, p.email, p.setup.FirstName, p.setup.LastName, "")
		if err != nil {
			return err
		}
		if !profile.IsProfileCompleted {
			setup := p.setup
			if _, err := profiles.CompleteSetup(ctx, p.id, &setup); err != nil {
				return errors.Wrapf(err, "set up %s", p.setup.Username)
			}
		}

		if err := seedTrips(ctx, travel, p, today); err != nil {
			return err
		}
		if err := seedJobs(ctx, jobs, p, today); err != nil {
			return err
		}
		logger.Info("seeded profile", "username", p.setup.Username, "user_type", p.setup.UserType)
	}
	return nil
}

// seedTrips clamps past start offsets to today; schedules cannot start earlier.
func seedTrips(ctx context.Context, travel service.ITravelService, p seedProfile, today models.Date) error {
	if len(p.trips) == 0 {
		return nil
	}
	existing, err := travel.ListOwn(ctx, p.id)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, t := range p.trips {
		start := today.AddDays(t.start)
		if start.Before(today) {
			start = today
		}
		_, err := travel.Create(ctx, p.id, &types.TravelScheduleRequest{
			StartDate:          start,
			EndDate:            today.AddDays(t.end),
			DestinationCity:    t.city,
			DestinationCountry: t.country,
		})
		if err != nil {
			return errors.Wrapf(err, "trip to %s", t.city)
		}
	}
	return nil
}

func seedJobs(ctx context.Context, jobs service.IJobService, p seedProfile, today models.Date) error {
	if len(p.jobs) == 0 {
		return nil
	}
	existing, err := jobs.ListByOwner(ctx, p.id)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, j := range p.jobs {
		req := &types.JobPostingRequest{Title: j.title, Description: j.description}
		if j.deadlineInDays != nil {
			deadline := today.AddDays(*j.deadlineInDays)
			req.DeadlineDate = &deadline
		}
		if _, err := jobs.Create(ctx, p.id, req); err != nil {
			return errors.Wrapf(err, "job %q", j.title)
		}
	}
	return nil
}
