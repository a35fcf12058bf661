package weighting

import (
	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
)

const (
	CARBON_NAME = "carbon_weighting"

	// CO2_BASELINE_G co2 grams that cost CO2_FACTOR_MULTIPLIER seconds
	CO2_BASELINE_G        = 1110.2
	CO2_FACTOR_MULTIPLIER = 0.65
)

// CarbonWeighting adds the scaled co2 emitted along the edge to the custom weight. the engine is
// owned by this weighting; do not share a CarbonWeighting between concurrent searches.
type CarbonWeighting struct {
	*ExternalityWeighting
	engine *emission.Engine
}

func NewCarbonWeighting(turnCostProvider TurnCostProvider, parameters Parameters, engine *emission.Engine,
	opts ...Option) (*CarbonWeighting, error) {
	w, err := NewExternalityWeighting(CARBON_NAME, turnCostProvider, parameters, carbonExternality(engine),
		CLAMP_TERM, opts...)
	if err != nil {
		return nil, err
	}
	return &CarbonWeighting{ExternalityWeighting: w, engine: engine}, nil
}

func (w *CarbonWeighting) Engine() *emission.Engine {
	return w.engine
}

// carbonExternality sums the co2 of every valid sub-segment. each segment estimate is already
// floored at zero by the engine, the sum is not clamped again.
func carbonExternality(engine *emission.Engine) ExternalityFunc {
	return func(points []geo.Point3D, speed float64) Externality {
		var (
			total   emission.Emissions
			seconds float64
		)
		geo.ForEachGradeSegment(points, func(seg geo.GradeSegment) {
			total.Add(engine.SegmentEmissions(seg.DistanceMeters, seg.GradeDegrees))
			seconds += seg.DistanceMeters / speed * pkg.SPEED_CONV
		})

		return Externality{
			Term:      total.CO2Grams / CO2_BASELINE_G * CO2_FACTOR_MULTIPLIER,
			Seconds:   seconds,
			Emissions: &total,
		}
	}
}
