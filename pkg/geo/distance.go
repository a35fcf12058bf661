package geo

import (
	"math"

	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// EquirectangularDistanceMeters planar distance in meters between two lat/lon points (degrees),
// using the equirectangular projection with a cosine correction at the mean latitude.
func EquirectangularDistanceMeters(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	x := (longTwo - longOne) * math.Cos((latOne+latTwo)/2)
	y := latTwo - latOne
	return math.Sqrt(x*x+y*y) * pkg.EARTH_RADIUS_M
}

// PathLengthMeters sum of the equirectangular distances along points, invalid points are skipped.
func PathLengthMeters(points []Point3D) float64 {
	length := 0.0
	for i := 0; i+1 < len(points); i++ {
		p, q := points[i], points[i+1]
		if !p.IsValidLatLon() || !q.IsValidLatLon() {
			continue
		}
		length += EquirectangularDistanceMeters(p.Lat, p.Lon, q.Lat, q.Lon)
	}
	return length
}
