package models

import "fmt"

// Coordinates is a (longitude, latitude) pair.
type Coordinates struct {
	Lon float64 `json:"lon" parquet:"name=lon, type=DOUBLE"`
	Lat float64 `json:"lat" parquet:"name=lat, type=DOUBLE"`
}

// BoundingBox limits generated coordinates to a region.
type BoundingBox struct {
	MinLat float64 `mapstructure:"min_lat"`
	MaxLat float64 `mapstructure:"max_lat"`
	MinLon float64 `mapstructure:"min_lon"`
	MaxLon float64 `mapstructure:"max_lon"`
}

// GhanaBounds covers the latitude and longitude range used for restaurant placement.
var GhanaBounds = BoundingBox{MinLat: 4.5, MaxLat: 10.5, MinLon: -3.5, MaxLon: 0.5}

func (b BoundingBox) Contains(c Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat < b.MaxLat && c.Lon >= b.MinLon && c.Lon < b.MaxLon
}

func (c Coordinates) String() string {
	return fmt.Sprintf("POINT(%f %f)", c.Lon, c.Lat)
}
