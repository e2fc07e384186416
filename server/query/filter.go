package query

import (
	"github.com/pkg/errors"
	"github.com/vibecheck/vibecheck/model"
	"gorm.io/gorm"
)

// BuildPostPredicates translates listing parameters into predicate fragments
// for the posts table (aliased p). Unrecognized or unparsable values mean the
// corresponding filter is simply not applied. The db handle is only used to
// resolve nearby location ids for the geospatial filter.
func BuildPostPredicates(db *gorm.DB, p Params) ([]Fragment, error) {
	var frags []Fragment

	if id, ok := p.Int("locationId"); ok {
		frags = append(frags, Fragment{SQL: "p.location_id = ?", Args: []interface{}{id}})
	}

	if id, ok := p.Int("authorId"); ok {
		frags = append(frags, Fragment{SQL: "p.author_id = ?", Args: []interface{}{id}})
	}

	if search := p["search"]; search != "" {
		pattern := "%" + search + "%"
		frags = append(frags, Fragment{
			SQL:  "(p.title ILIKE ? OR p.content ILIKE ?)",
			Args: []interface{}{pattern, pattern},
		})
	}

	if tags := p.StringList("tags"); len(tags) > 0 {
		frags = append(frags, Fragment{
			SQL:  "EXISTS (SELECT 1 FROM post_tags pt2 JOIN tags t2 ON pt2.tag_id = t2.id WHERE pt2.post_id = p.id AND t2.tag_name IN ?)",
			Args: []interface{}{tags},
		})
	}

	if lat, lng, radiusKm, ok := radiusFromParams(p); ok {
		ids, err := NearbyLocationIds(db, lat, lng, radiusKm)
		if err != nil {
			return nil, errors.Wrap(err, "fail to resolve locations within radius")
		}
		frags = append(frags, Fragment{SQL: "p.location_id IN ?", Args: []interface{}{ids}})
	}

	return frags, nil
}

// BuildLocationPredicates translates listing parameters into predicate
// fragments for the locations table (aliased l). Pure: the geospatial filter
// applies directly to the stored point, no id resolution round trip needed.
func BuildLocationPredicates(p Params) []Fragment {
	var frags []Fragment

	if ids := p.IntList("favoriteIds"); len(ids) > 0 {
		frags = append(frags, Fragment{SQL: "l.id IN ?", Args: []interface{}{ids}})
	}

	// The literal "any" means no status filter, it is not a fourth enum value.
	if status := p["status"]; status != "" && status != "any" {
		frags = append(frags, Fragment{
			SQL:  "l.status = ?",
			Args: []interface{}{model.LocationStatus(status)},
		})
	}

	if search := p["search"]; search != "" {
		pattern := "%" + search + "%"
		frags = append(frags, Fragment{
			SQL:  "(l.name ILIKE ? OR l.address ILIKE ?)",
			Args: []interface{}{pattern, pattern},
		})
	}

	if lat, lng, radiusKm, ok := radiusFromParams(p); ok {
		frags = append(frags, WithinRadius("l", lat, lng, radiusKm))
	}

	return frags
}
