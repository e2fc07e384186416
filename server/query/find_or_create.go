package query

import (
	"math"

	"github.com/pkg/errors"
	"github.com/vibecheck/vibecheck/model"
	"gorm.io/gorm"
)

// dedupCellDegrees quantizes coordinates into ~100m grid cells for the
// advisory-lock key, so concurrent inserts of the same place serialize.
const dedupCellDegrees = 0.001

// FindOrCreateLocation searches for an existing location within
// ProximityThresholdMeters of the candidate point and reuses it unchanged
// (first-write-wins, name/address differences are not merged). When none
// exists it inserts a new UNVERIFIED location.
//
// Must run inside a transaction: it takes pg_advisory_xact_lock on the
// quantized coordinates to close the check-then-insert race window, and the
// lock is released with the transaction.
func FindOrCreateLocation(tx *gorm.DB, name, address string, lat, lng float64) (*model.Location, error) {
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", dedupLockKey(lat, lng)).Error; err != nil {
		return nil, errors.Wrap(err, "fail to acquire location dedup lock")
	}

	frag := WithinRadius("locations", lat, lng, ProximityThresholdMeters/1000)
	var existing model.Location
	result := tx.Raw(
		"SELECT id, name, address, status, claimed_by_owner_id, created_at, updated_at FROM locations WHERE "+frag.SQL+" LIMIT 1",
		frag.Args...,
	).Scan(&existing)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "fail to search for nearby location")
	}
	if result.RowsAffected > 0 {
		return &existing, nil
	}

	created := model.Location{
		Name:        name,
		Address:     address,
		Coordinates: model.Point{Longitude: lng, Latitude: lat},
		Status:      model.LocationStatusUnverified,
	}
	if err := tx.Create(&created).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create location")
	}
	return &created, nil
}

// dedupLockKey packs the quantized cell coordinates into the single bigint
// pg_advisory_xact_lock expects.
func dedupLockKey(lat, lng float64) int64 {
	latCell := int32(math.Round(lat / dedupCellDegrees))
	lngCell := int32(math.Round(lng / dedupCellDegrees))
	return int64(latCell)<<32 | int64(uint32(lngCell))
}
