package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/adhub/adhub/backend/internal/logging"
)

// Identity provider event types.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// WebhookVerifier checks the signature headers of a webhook delivery.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

// NewWebhookVerifier returns a svix verifier for the signing secret (whsec_...).
func NewWebhookVerifier(secret string) (WebhookVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, errors.Wrap(err, "create webhook verifier")
	}
	return wh, nil
}

type identityEvent struct {
	Type string           `json:"type"`
	Data identityUserData `json:"data"`
}

type identityEmail struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type identityUserData struct {
	ID                    string          `json:"id"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	ImageURL              string          `json:"image_url"`
	PrimaryEmailAddressID string          `json:"primary_email_address_id"`
	EmailAddresses        []identityEmail `json:"email_addresses"`
}

// PrimaryEmail returns the primary address, or the first one listed.
func (d identityUserData) PrimaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

// WebhookService applies identity provider user events to profiles.
type WebhookService struct {
	verifier WebhookVerifier
	profiles IProfileService
	logger   *logging.Logger
}

var _ IWebhookService = (*WebhookService)(nil)

func NewWebhookService(verifier WebhookVerifier, profiles IProfileService, logger *logging.Logger) *WebhookService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookService{verifier: verifier, profiles: profiles, logger: logger}
}

// Handle verifies and applies one delivery. Unknown event types are ignored.
func (s *WebhookService) Handle(ctx context.Context, payload []byte, headers http.Header) error {
	if err := s.verifier.Verify(payload, headers); err != nil {
		s.logger.WarnContext(ctx, "rejected webhook delivery", "error", err)
		return errors.WithSecondaryError(ErrBadSignature, err)
	}

	var event identityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return validationError("payload", "malformed event")
	}
	if event.Data.ID == "" {
		return validationError("data.id", "is required")
	}

	data := event.Data
	switch event.Type {
	case EventUserCreated:
		_, err := s.profiles.Bootstrap(ctx, data.ID, data.PrimaryEmail(), data.FirstName, data.LastName, data.ImageURL)
		return err
	case EventUserUpdated:
		err := s.profiles.SyncIdentity(ctx, data.ID, data.PrimaryEmail(), data.FirstName, data.LastName, data.ImageURL)
		if errors.Is(err, ErrNotFound) {
			_, err = s.profiles.Bootstrap(ctx, data.ID, data.PrimaryEmail(), data.FirstName, data.LastName, data.ImageURL)
		}
		return err
	case EventUserDeleted:
		err := s.profiles.Delete(ctx, data.ID)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	default:
		s.logger.InfoContext(ctx, "ignoring webhook event", "type", event.Type)
		return nil
	}
}
