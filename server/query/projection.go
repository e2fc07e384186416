package query

import (
	"time"

	"gorm.io/datatypes"
)

// PostRow is the uniform row shape of a post listing. Every row carries the
// same keys: author and location are nested objects, tags is always a JSON
// array and serializes as [] when the post has none.
type PostRow struct {
	Id               int32          `json:"id"`
	Title            *string        `json:"title"`
	Content          string         `json:"content"`
	MediaUrl         *string        `json:"mediaUrl"`
	AuthorID         int32          `json:"authorId"`
	LocationID       int32          `json:"locationId"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Author           datatypes.JSON `json:"author"`
	Location         datatypes.JSON `json:"location"`
	Tags             datatypes.JSON `json:"tags"`
	OfficialResponse datatypes.JSON `json:"officialResponse"`
}

// LocationRow is the uniform row shape of a location listing, with the
// post_count aggregate that drives the primary sort order.
type LocationRow struct {
	Id               int32          `json:"id"`
	Name             string         `json:"name"`
	Address          string         `json:"address"`
	Status           string         `json:"status"`
	ClaimedByOwnerID *int32         `json:"claimedByOwnerId"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Coordinates      datatypes.JSON `json:"coordinates"`
	PostCount        int32          `json:"post_count"`
	RecentPosts      datatypes.JSON `json:"recent_posts"`
}

// The author sub-object deliberately exposes only username and profile
// picture, never the full account record.
const postSelect = `SELECT
  p.id, p.title, p.content, p.media_url, p.author_id, p.location_id, p.created_at, p.updated_at,
  json_build_object(
    'username', a.username,
    'profilePictureUrl', a.profile_picture_url
  ) AS author,
  json_build_object(
    'id', l.id,
    'name', l.name,
    'address', l.address,
    'status', l.status,
    'coordinates', json_build_object(
      'longitude', ST_X(l.coordinates::geometry),
      'latitude', ST_Y(l.coordinates::geometry)
    )
  ) AS location,
  COALESCE(
    json_agg(
      json_build_object('id', t.id, 'tagName', t.tag_name)
    ) FILTER (WHERE t.id IS NOT NULL),
    '[]'::json
  ) AS tags,
  CASE WHEN r.id IS NULL THEN NULL ELSE json_build_object(
    'id', r.id,
    'ownerId', r.owner_id,
    'content', r.content,
    'createdAt', r.created_at
  ) END AS official_response
FROM posts p
LEFT JOIN accounts a ON p.author_id = a.id
LEFT JOIN locations l ON p.location_id = l.id
LEFT JOIN post_tags pt ON p.id = pt.post_id
LEFT JOIN tags t ON pt.tag_id = t.id
LEFT JOIN official_responses r ON r.post_id = p.id
`

const postGroupOrder = `GROUP BY p.id, a.username, a.profile_picture_url, l.id, r.id
ORDER BY p.created_at DESC, p.id DESC
`

const locationSelect = `SELECT
  l.id, l.name, l.address, l.status, l.claimed_by_owner_id, l.created_at, l.updated_at,
  json_build_object(
    'longitude', ST_X(l.coordinates::geometry),
    'latitude', ST_Y(l.coordinates::geometry)
  ) AS coordinates,
  CAST(COUNT(p.id) AS INTEGER) AS post_count,
  COALESCE(
    json_agg(
      DISTINCT jsonb_build_object(
        'id', p.id,
        'title', p.title,
        'content', p.content,
        'createdAt', p.created_at,
        'author', jsonb_build_object(
          'username', a.username,
          'profilePictureUrl', a.profile_picture_url
        )
      )
    ) FILTER (WHERE p.id IS NOT NULL),
    '[]'::json
  ) AS recent_posts
FROM locations l
LEFT JOIN posts p ON l.id = p.location_id
LEFT JOIN accounts a ON p.author_id = a.id
`

const locationGroupOrder = `GROUP BY l.id
ORDER BY post_count DESC, l.created_at DESC, l.id DESC
`

// BuildPostListSQL composes the post projection, the given predicates and
// pagination into one executable statement.
func BuildPostListSQL(frags []Fragment, page Pagination) (string, []interface{}) {
	where, args := joinWhere(frags)
	sql := postSelect
	if where != "" {
		sql += where + "\n"
	}
	sql += postGroupOrder + "LIMIT ? OFFSET ?"
	return sql, append(args, page.Limit, page.Offset)
}

// BuildLocationListSQL is the location-side counterpart of BuildPostListSQL.
// post_count is the primary sort key so pagination stays reproducible only
// together with the created_at and id tie-breaks.
func BuildLocationListSQL(frags []Fragment, page Pagination) (string, []interface{}) {
	where, args := joinWhere(frags)
	sql := locationSelect
	if where != "" {
		sql += where + "\n"
	}
	sql += locationGroupOrder + "LIMIT ? OFFSET ?"
	return sql, append(args, page.Limit, page.Offset)
}
