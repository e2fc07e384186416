package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
)

// Point is a WGS84 coordinate pair stored in a PostGIS geometry(Point,4326)
// column. It round-trips through EWKB hex, which is how Postgres returns
// geometry values by default.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (p Point) Value() (driver.Value, error) {
	point := geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude})
	point.SetSRID(4326)
	return ewkbhex.Encode(point, ewkbhex.NDR)
}

func (p *Point) Scan(src interface{}) error {
	if src == nil {
		return nil
	}

	var encoded string
	switch v := src.(type) {
	case string:
		encoded = v
	case []byte:
		encoded = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Point", src)
	}

	decoded, err := ewkbhex.Decode(encoded)
	if err != nil {
		return err
	}
	point, ok := decoded.(*geom.Point)
	if !ok {
		return fmt.Errorf("expected a point geometry, got %T", decoded)
	}

	p.Longitude = point.X()
	p.Latitude = point.Y()
	return nil
}

// GormDataType keeps AutoMigrate from guessing a column type for Point.
func (Point) GormDataType() string {
	return "geometry(Point,4326)"
}
