package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// Point3D is one waypoint of an edge geometry. Ele is in meters above sea level, NaN when unknown.
type Point3D struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Ele float64 `json:"ele"`
}

func NewPoint3D(lat, lon, ele float64) Point3D {
	return Point3D{Lat: lat, Lon: lon, Ele: ele}
}

// NewPoint2D point without elevation data.
func NewPoint2D(lat, lon float64) Point3D {
	return Point3D{Lat: lat, Lon: lon, Ele: math.NaN()}
}

func (p Point3D) GetLat() float64 {
	return p.Lat
}

func (p Point3D) GetLon() float64 {
	return p.Lon
}

func (p Point3D) GetEle() float64 {
	return p.Ele
}

func (p Point3D) IsValidLatLon() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}

// IsValid true when coordinates and elevation are all present and finite.
func (p Point3D) IsValid() bool {
	return p.IsValidLatLon() && !math.IsNaN(p.Ele) && !math.IsInf(p.Ele, 0)
}

func (p Point3D) Has3D() bool {
	return !math.IsNaN(p.Ele)
}
