package weighting

import (
	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
)

const (
	ELEVATION_NAME = "elevation_weighting"

	ELEVATION_BASELINE_M        = 7.13
	ELEVATION_FACTOR_MULTIPLIER = 0.65
)

// NewElevationWeighting custom weight plus the scaled net elevation gain of the edge. descents make
// the term negative, only the combined weight is floored at zero.
func NewElevationWeighting(turnCostProvider TurnCostProvider, parameters Parameters,
	opts ...Option) (*ExternalityWeighting, error) {
	return NewExternalityWeighting(ELEVATION_NAME, turnCostProvider, parameters, elevationExternality,
		CLAMP_COMBINED, opts...)
}

func elevationExternality(points []geo.Point3D, speed float64) Externality {
	var gain, seconds float64
	geo.ForEachGradeSegment(points, func(seg geo.GradeSegment) {
		gain += seg.RiseMeters
		seconds += seg.DistanceMeters / speed * pkg.SPEED_CONV
	})

	return Externality{
		Term:    gain / ELEVATION_BASELINE_M * ELEVATION_FACTOR_MULTIPLIER,
		Seconds: seconds,
	}
}
