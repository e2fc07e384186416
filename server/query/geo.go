package query

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	// DefaultRadiusKm is the canonical radius applied when a caller supplies
	// coordinates without a radius. Every call site takes it from here.
	DefaultRadiusKm = 10.0

	// ProximityThresholdMeters is the distance under which two coordinate
	// pairs are considered the same place for deduplication purposes.
	ProximityThresholdMeters = 100.0
)

// WithinRadius emits the PostGIS predicate that is true for rows of the
// aliased table whose stored point lies within radiusKm of (lat, lng).
// ST_DWithin over geography is inclusive at the boundary: a point exactly at
// the radius is returned.
func WithinRadius(alias string, lat, lng, radiusKm float64) Fragment {
	return Fragment{
		SQL: fmt.Sprintf(
			"ST_DWithin(%s.coordinates::geography, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
			alias),
		Args: []interface{}{lng, lat, radiusKm * 1000},
	}
}

// NearbyLocationIds resolves the ids of all locations within radiusKm of the
// given point. Posts carry no coordinates of their own, so the post listing
// path resolves nearby locations first and then constrains posts by
// location-id membership.
func NearbyLocationIds(db *gorm.DB, lat, lng, radiusKm float64) ([]int32, error) {
	frag := WithinRadius("locations", lat, lng, radiusKm)
	var ids []int32
	err := db.Raw("SELECT id FROM locations WHERE "+frag.SQL, frag.Args...).Scan(&ids).Error
	return ids, err
}

// radiusFromParams reads lat/lng (or latitude/longitude) plus an optional
// radius. ok is false when no usable coordinate pair is present; parse
// failures degrade to "no geospatial filter", never to an error.
func radiusFromParams(p Params) (lat, lng, radiusKm float64, ok bool) {
	lat, latOK := p.Float("lat")
	if !latOK {
		lat, latOK = p.Float("latitude")
	}
	lng, lngOK := p.Float("lng")
	if !lngOK {
		lng, lngOK = p.Float("longitude")
	}
	if !latOK || !lngOK {
		return 0, 0, 0, false
	}

	radiusKm, radiusOK := p.Float("radius")
	if !radiusOK || radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return lat, lng, radiusKm, true
}
