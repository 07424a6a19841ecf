package database_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adhub/adhub/backend/internal/database"
	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/testhelpers"
)

func TestRunMigrationsSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db, "does-not-matter"))
	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}
}

func TestRunMigrationsPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)

	creator := testhelpers.CreateCreator(t, db, "jane_doe")
	testhelpers.CreateSchedule(t, db, creator.ID, "2025-03-01", "2025-03-10", "Tokyo", "JP")

	var schedule models.TravelSchedule
	require.NoError(t, db.Where("profile_id = ?", creator.ID).First(&schedule).Error)
	assert.Equal(t, "2025-03-01", schedule.StartDate.String())

	// migrations are idempotent
	require.NoError(t, database.RunMigrations(db, testhelpers.MigrationsDir()))

	dup := models.Profile{ID: "user_dup", Username: ptr("JANE_DOE")}
	err := db.Create(&dup).Error
	assert.Error(t, err, "usernames are unique regardless of case")
}

func ptr[T any](v T) *T { return &v }
