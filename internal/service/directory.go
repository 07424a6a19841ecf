package service

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/adhub/adhub/backend/internal/countries"
	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/travel"
	"github.com/adhub/adhub/backend/internal/types"
)

// Sweeper removes expired travel schedules.
type Sweeper interface {
	SweepExpired(ctx context.Context, profileID *string) (int64, error)
}

// DirectoryService serves the public creator directory.
type DirectoryService struct {
	db      *gorm.DB
	sweeper Sweeper
	clock   travel.Clock
	logger  *logging.Logger
}

var _ IDirectoryService = (*DirectoryService)(nil)

func NewDirectoryService(db *gorm.DB, sweeper Sweeper, clock travel.Clock, logger *logging.Logger) *DirectoryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DirectoryService{db: db, sweeper: sweeper, clock: clock, logger: logger}
}

// ListCreators returns public creators with their current trip, if any.
func (s *DirectoryService) ListCreators(ctx context.Context, filter types.CreatorFilter) ([]types.CreatorListing, error) {
	if s.sweeper != nil {
		if _, err := s.sweeper.SweepExpired(ctx, nil); err != nil {
			s.logger.WarnContext(ctx, "directory sweep failed", "error", err)
		}
	}

	query := s.db.WithContext(ctx).
		Where("is_public = ? AND is_profile_completed = ? AND user_type = ?", true, true, models.UserTypeContentCreator)
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		like := containsPattern(q)
		query = query.Where(
			`LOWER(username) LIKE ? ESCAPE '\' OR LOWER(first_name) LIKE ? ESCAPE '\' OR `+
				`LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(bio) LIKE ? ESCAPE '\'`,
			like, like, like, like,
		)
	}

	var profiles []models.Profile
	if err := query.Find(&profiles).Error; err != nil {
		s.logger.ErrorContext(ctx, "failed to load creators", "error", err)
		return nil, errors.Wrap(err, "load creators")
	}
	if len(profiles) == 0 {
		return []types.CreatorListing{}, nil
	}

	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}

	today := s.clock.Today()
	maxStart, minEnd := travel.WindowBounds(today)
	var schedules []models.TravelSchedule
	err := s.db.WithContext(ctx).
		Where("profile_id IN ? AND start_date <= ? AND end_date >= ?", ids, maxStart, minEnd).
		Order("start_date ASC").
		Find(&schedules).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load travel schedules", "error", err)
		return nil, errors.Wrap(err, "load travel schedules")
	}

	return MergeDirectory(today, profiles, schedules, filter), nil
}

// MergeDirectory attaches at most one in-window trip to each creator, applies
// the location filters and orders the result. With a country filter, creators
// travelling to that country come first; otherwise and within each group the
// order is by username under English collation, ignoring case.
func MergeDirectory(today models.Date, profiles []models.Profile, schedules []models.TravelSchedule, filter types.CreatorFilter) []types.CreatorListing {
	country := countries.Normalize(filter.Country)
	city := strings.ToLower(strings.TrimSpace(filter.City))

	byProfile := make(map[string][]models.TravelSchedule, len(profiles))
	for _, schedule := range schedules {
		if !travel.Classify(today, schedule.StartDate, schedule.EndDate).IsTraveling() {
			continue
		}
		byProfile[schedule.ProfileID] = append(byProfile[schedule.ProfileID], schedule)
	}

	listings := make([]types.CreatorListing, 0, len(profiles))
	for i := range profiles {
		profile := &profiles[i]
		listing := creatorListing(profile)

		trip := pickTrip(byProfile[profile.ID], country)
		if trip != nil {
			listing.Travel = annotation(today, trip)
			listing.IsTraveling = true
		}

		if country != "" && profile.Country != country && !travellingTo(listing.Travel, country) {
			continue
		}
		if city != "" && strings.ToLower(profile.City) != city &&
			(listing.Travel == nil || strings.ToLower(listing.Travel.DestinationCity) != city) {
			continue
		}
		listings = append(listings, listing)
	}

	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(listings, func(i, j int) bool {
		if country != "" {
			ti, tj := travellingTo(listings[i].Travel, country), travellingTo(listings[j].Travel, country)
			if ti != tj {
				return ti
			}
		}
		return col.CompareString(listings[i].Username, listings[j].Username) < 0
	})
	return listings
}

// GetCreator returns a creator page. Private profiles are only shown to their owner.
func (s *DirectoryService) GetCreator(ctx context.Context, username, viewerID string) (*types.CreatorDetail, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&profile).Error
	if err != nil {
		return nil, notFound(err, "creator")
	}
	if !profile.IsCreator() || !profile.IsProfileCompleted || (!profile.IsPublic && profile.ID != viewerID) {
		return nil, errors.Wrap(ErrNotFound, "creator not found")
	}

	today := s.clock.Today()
	var schedules []models.TravelSchedule
	err = s.db.WithContext(ctx).
		Where("profile_id = ? AND end_date >= ?", profile.ID, today).
		Order("start_date ASC").
		Find(&schedules).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load creator schedules", "profile_id", profile.ID, "error", err)
		return nil, errors.Wrap(err, "load creator schedules")
	}

	detail := &types.CreatorDetail{
		CreatorListing: creatorListing(&profile),
		Schedules:      make([]types.TravelScheduleView, 0, len(schedules)),
	}
	for _, schedule := range schedules {
		view := scheduleView(today, schedule)
		detail.Schedules = append(detail.Schedules, view)
		if detail.Travel == nil && view.IsTraveling {
			detail.Travel = annotation(today, &view.TravelSchedule)
			detail.IsTraveling = true
		}
	}
	return detail, nil
}

// pickTrip prefers the first trip to country, falling back to the first trip.
func pickTrip(trips []models.TravelSchedule, country string) *models.TravelSchedule {
	if len(trips) == 0 {
		return nil
	}
	if country != "" {
		for i := range trips {
			if trips[i].DestinationCountry == country {
				return &trips[i]
			}
		}
	}
	return &trips[0]
}

func travellingTo(trip *types.TravelAnnotation, country string) bool {
	return trip != nil && trip.DestinationCountry == country
}

func annotation(today models.Date, trip *models.TravelSchedule) *types.TravelAnnotation {
	return &types.TravelAnnotation{
		ScheduleID:         trip.ID,
		StartDate:          trip.StartDate,
		EndDate:            trip.EndDate,
		DestinationCity:    trip.DestinationCity,
		DestinationCountry: trip.DestinationCountry,
		State:              string(travel.Classify(today, trip.StartDate, trip.EndDate)),
	}
}

func creatorListing(p *models.Profile) types.CreatorListing {
	return types.CreatorListing{
		ProfileID:           p.ID,
		Username:            p.UsernameValue(),
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		City:                p.City,
		Country:             p.Country,
		Bio:                 p.Bio,
		ProfilePhotoURL:     p.ProfilePhotoURL,
		InstagramURL:        p.InstagramURL,
		TikTokURL:           p.TikTokURL,
		YouTubeURL:          p.YouTubeURL,
		OpenToCollaboration: p.OpenToCollaboration,
	}
}
