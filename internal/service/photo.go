package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/models"
)

const (
	MaxPhotoBytes  = 5 << 20
	MaxPhotoSide   = 512
	MaxPhotoPixels = 40_000_000
	photoQuality   = 85
	photoMediaType = "image/jpeg"
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// PhotoUpload is a profile photo as received from the client.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PhotoPrefix is the storage prefix holding every object of a profile.
func PhotoPrefix(profileID string) string {
	return "profiles/" + profileID + "/"
}

// PhotoService normalises profile photos and stores them in object storage.
type PhotoService struct {
	storage  ObjectStore
	profiles IProfileService
	now      func() time.Time
	logger   *logging.Logger
}

var _ IPhotoService = (*PhotoService)(nil)

func NewPhotoService(storage ObjectStore, profiles IProfileService, logger *logging.Logger) *PhotoService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PhotoService{storage: storage, profiles: profiles, now: time.Now, logger: logger}
}

// Upload checks, downsizes and stores a photo, then points the profile at it.
// If the profile update fails the stored object is left behind.
func (s *PhotoService) Upload(ctx context.Context, profileID string, upload PhotoUpload) (*models.Profile, error) {
	if upload.Size > MaxPhotoBytes {
		return nil, validationError("photo", "photo must be 5 MB or smaller")
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(upload.ContentType, ";", 2)[0]))
	if !allowedPhotoTypes[contentType] {
		return nil, validationError("photo", "photo must be a JPEG, PNG or WebP image")
	}

	raw, err := io.ReadAll(io.LimitReader(upload.Body, MaxPhotoBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read photo")
	}
	if len(raw) > MaxPhotoBytes {
		return nil, validationError("photo", "photo must be 5 MB or smaller")
	}

	encoded, err := normalisePhoto(raw)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%savatar-%d.jpg", PhotoPrefix(profileID), s.now().Unix())
	url, err := s.storage.Put(ctx, key, photoMediaType, bytes.NewReader(encoded), int64(len(encoded)))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store profile photo", "profile_id", profileID, "error", err)
		return nil, errors.Wrap(err, "store profile photo")
	}

	profile, err := s.profiles.SetPhoto(ctx, profileID, key, url)
	if err != nil {
		s.logger.ErrorContext(ctx, "profile photo stored but profile update failed", "profile_id", profileID, "key", key, "error", err)
		return nil, err
	}
	return profile, nil
}

// DeleteAll removes every stored object of the profile.
func (s *PhotoService) DeleteAll(ctx context.Context, profileID string) error {
	if err := s.storage.DeletePrefix(ctx, PhotoPrefix(profileID)); err != nil {
		return errors.Wrapf(err, "delete photos of %s", profileID)
	}
	return nil
}

// normalisePhoto decodes an image, fits it into MaxPhotoSide square and
// re-encodes it as JPEG.
func normalisePhoto(raw []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, validationError("photo", "photo could not be decoded")
	}
	// The byte limit does not bound the decoded size.
	if int64(cfg.Width)*int64(cfg.Height) > MaxPhotoPixels {
		return nil, validationError("photo", "photo dimensions are too large")
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, validationError("photo", "photo could not be decoded")
	}

	bounds := src.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), MaxPhotoSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: photoQuality}); err != nil {
		return nil, errors.Wrap(err, "encode photo")
	}
	return buf.Bytes(), nil
}

// fitWithin scales (w, h) down to fit a side x side box, keeping the aspect
// ratio. Images already inside the box keep their size.
func fitWithin(w, h, side int) (int, int) {
	if w <= side && h <= side {
		return w, h
	}
	if w >= h {
		return side, atLeastOne(h * side / w)
	}
	return atLeastOne(w * side / h), side
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
