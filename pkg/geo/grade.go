package geo

import (
	"math"

	"github.com/golang/geo/s1"
)

// GradeSegment one sub-segment between two consecutive valid waypoints.
type GradeSegment struct {
	DistanceMeters float64
	RiseMeters     float64 // uphill positive
	GradeDegrees   float64 // uphill positive
}

// ForEachGradeSegment calls fn for every consecutive pair of valid points, in order.
// Pairs where either point misses coordinates or elevation are skipped.
func ForEachGradeSegment(points []Point3D, fn func(seg GradeSegment)) {
	for i := 0; i+1 < len(points); i++ {
		p, q := points[i], points[i+1]
		if !p.IsValid() || !q.IsValid() {
			continue
		}

		dist := EquirectangularDistanceMeters(p.Lat, p.Lon, q.Lat, q.Lon)
		rise := q.Ele - p.Ele
		grade := s1.Angle(math.Atan2(rise, dist)).Degrees()
		fn(GradeSegment{
			DistanceMeters: dist,
			RiseMeters:     rise,
			GradeDegrees:   grade,
		})
	}
}

// GradeSegments collects ForEachGradeSegment into a slice.
func GradeSegments(points []Point3D) []GradeSegment {
	segs := make([]GradeSegment, 0, len(points))
	ForEachGradeSegment(points, func(seg GradeSegment) {
		segs = append(segs, seg)
	})
	return segs
}

// NetElevationGain signed sum of the rises of all valid sub-segments. an ascent followed by an
// equal descent nets to zero.
func NetElevationGain(points []Point3D) float64 {
	gain := 0.0
	ForEachGradeSegment(points, func(seg GradeSegment) {
		gain += seg.RiseMeters
	})
	return gain
}
