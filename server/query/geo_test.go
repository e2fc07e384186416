package query

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestWithinRadius(t *testing.T) {
	frag := WithinRadius("l", 40.0, -75.0, 10)

	assert.Equal(t,
		"ST_DWithin(l.coordinates::geography, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
		frag.SQL)
	assert.Equal(t, []interface{}{-75.0, 40.0, 10000.0}, frag.Args)
}

func TestRadiusFromParams(t *testing.T) {
	lat, lng, radiusKm, ok := radiusFromParams(Params{"lat": "40", "lng": "-75", "radius": "2.5"})
	require.True(t, ok)
	assert.Equal(t, 40.0, lat)
	assert.Equal(t, -75.0, lng)
	assert.Equal(t, 2.5, radiusKm)

	// Long-form keys are accepted too.
	_, _, radiusKm, ok = radiusFromParams(Params{"latitude": "40", "longitude": "-75"})
	require.True(t, ok)
	assert.Equal(t, DefaultRadiusKm, radiusKm)

	// Non-positive radius falls back to the default.
	_, _, radiusKm, ok = radiusFromParams(Params{"lat": "40", "lng": "-75", "radius": "-1"})
	require.True(t, ok)
	assert.Equal(t, DefaultRadiusKm, radiusKm)

	_, _, _, ok = radiusFromParams(Params{"lat": "40"})
	assert.False(t, ok)

	_, _, _, ok = radiusFromParams(Params{"lat": "abc", "lng": "-75"})
	assert.False(t, ok)
}

func TestDedupLockKeyQuantization(t *testing.T) {
	// Points within the same ~100m cell share a lock key.
	assert.Equal(t, dedupLockKey(37.77490, -122.41940), dedupLockKey(37.77493, -122.41937))

	// Clearly distinct places do not contend on the same lock.
	assert.NotEqual(t, dedupLockKey(37.7749, -122.4194), dedupLockKey(40.7128, -74.0060))

	// Latitude and longitude cells must not collapse into each other.
	assert.NotEqual(t, dedupLockKey(1.0, 2.0), dedupLockKey(2.0, 1.0))
}

func TestNearbyLocationIdsSQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id FROM locations WHERE ST_DWithin(locations.coordinates::geography, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)")).
		WithArgs(-75.0, 40.0, 5000.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(1)).AddRow(int32(4)))

	ids, err := NearbyLocationIds(db, 40.0, -75.0, 5)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 4}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
