package service_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/testhelpers"
	"github.com/adhub/adhub/backend/internal/types"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoUploadNormalisesAndStores(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	store := newMemoryStore()
	profiles := service.NewProfileService(db, store, nil)
	photos := service.NewPhotoService(store, profiles, nil)
	owner := testhelpers.CreateBusinessOwner(t, db, "acme_shop")
	jobs := service.NewJobService(db, testhelpers.FixedClock("2025-02-05"), nil)
	job, err := jobs.Create(ctx, owner.ID, &types.JobPostingRequest{Title: "Reel", Description: "x"})
	require.NoError(t, err)

	raw := pngBytes(t, 1024, 768)
	profile, err := photos.Upload(ctx, owner.ID, service.PhotoUpload{
		Filename:    "me.png",
		ContentType: "image/png",
		Size:        int64(len(raw)),
		Body:        bytes.NewReader(raw),
	})
	require.NoError(t, err)

	keys := store.keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "profiles/"+owner.ID+"/avatar-"))
	assert.True(t, strings.HasSuffix(keys[0], ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+keys[0], profile.ProfilePhotoURL)

	stored, err := jpeg.Decode(bytes.NewReader(store.objects[keys[0]]))
	require.NoError(t, err)
	assert.Equal(t, 512, stored.Bounds().Dx())
	assert.Equal(t, 384, stored.Bounds().Dy())

	view, err := jobs.GetBySlug(ctx, job.Slug, "")
	require.NoError(t, err)
	assert.Equal(t, profile.ProfilePhotoURL, view.OwnerPhotoURL)

	require.NoError(t, photos.DeleteAll(ctx, owner.ID))
	assert.Empty(t, store.keys())
}

func TestPhotoUploadRejectsBeforeStorage(t *testing.T) {
	store := newMemoryStore()
	store.putErr = errors.New("storage must not be reached")
	photos := service.NewPhotoService(store, nil, nil)
	ctx := context.Background()

	_, err := photos.Upload(ctx, "user_1", service.PhotoUpload{
		ContentType: "image/png",
		Size:        service.MaxPhotoBytes + 1,
		Body:        bytes.NewReader(nil),
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = photos.Upload(ctx, "user_1", service.PhotoUpload{
		ContentType: "image/gif",
		Size:        10,
		Body:        strings.NewReader("GIF89a"),
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = photos.Upload(ctx, "user_1", service.PhotoUpload{
		ContentType: "image/jpeg",
		Size:        9,
		Body:        strings.NewReader("not a jpg"),
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestPhotoUploadLeavesObjectWhenProfileUpdateFails(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	store := newMemoryStore()
	photos := service.NewPhotoService(store, service.NewProfileService(db, store, nil), nil)
	raw := pngBytes(t, 64, 64)

	_, err := photos.Upload(context.Background(), "missing", service.PhotoUpload{
		ContentType: "image/png",
		Size:        int64(len(raw)),
		Body:        bytes.NewReader(raw),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Len(t, store.keys(), 1)
}

// hugePNG is a valid 1x1 PNG whose header claims w by h pixels.
func hugePNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	raw := pngBytes(t, 1, 1)
	// IHDR follows the 8-byte signature: length(4) type(4) data(13) crc(4).
	binary.BigEndian.PutUint32(raw[16:20], w)
	binary.BigEndian.PutUint32(raw[20:24], h)
	binary.BigEndian.PutUint32(raw[29:33], crc32.ChecksumIEEE(raw[12:29]))
	return raw
}

func TestPhotoUploadRejectsOversizedDimensions(t *testing.T) {
	store := newMemoryStore()
	store.putErr = errors.New("storage must not be reached")
	photos := service.NewPhotoService(store, nil, nil)

	raw := hugePNG(t, 30000, 30000)
	_, err := photos.Upload(context.Background(), "user_1", service.PhotoUpload{
		ContentType: "image/png",
		Size:        int64(len(raw)),
		Body:        bytes.NewReader(raw),
	})
	require.Error(t, err)
	var fe *service.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "photo", fe.Field)
	assert.Equal(t, "photo dimensions are too large", fe.Message)
	assert.Empty(t, store.keys())
}
