package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestVehicleModelColumnMapping(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Vehicle{}))

	vehicle := Vehicle{
		ID:        uuid.New(),
		Plate:     "06 XYZ 42",
		Brand:     "Fiat",
		ModelName: "Egea",
		Status:    VehicleIdle,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&vehicle).Error)

	// ModelName maps onto the plain "model" column
	var name string
	require.NoError(t, db.Raw("SELECT model FROM vehicles WHERE id = ?", vehicle.ID).Scan(&name).Error)
	assert.Equal(t, "Egea", name)

	var loaded Vehicle
	require.NoError(t, db.First(&loaded, "id = ?", vehicle.ID).Error)
	assert.Equal(t, "Egea", loaded.ModelName)

	// The embedded timestamps and soft delete still work
	assert.False(t, loaded.CreatedAt.IsZero())
	require.NoError(t, db.Delete(&loaded).Error)

	var count int64
	db.Model(&Vehicle{}).Where("id = ?", vehicle.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
