package routing

import (
	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

func millisToSeconds(millis int64) float64 {
	return float64(millis) / 1000
}

/*
TripEmissions replays path through engine in travel order and returns the trip totals.

the engine is reset first. each edge's travel time is spread over its grade segments by distance, and
Accumulate always receives the elapsed time since the trip start (turn time included), so the idle
fuel term covers the whole trip. edges without elevation data add time but no fuel.
*/
func TripEmissions(path Path, engine *emission.Engine, mode pkg.FetchMode) emission.Accumulator {
	engine.Reset()

	elapsed := 0.0
	for _, pe := range path.Edges {
		elapsed += millisToSeconds(pe.TurnMillis)
		edgeSeconds := millisToSeconds(pe.Millis)

		points := pe.Edge.FetchWayGeometry(mode)
		if pe.Reverse {
			points = util.ReverseG(points)
		}

		segments := geo.GradeSegments(points)
		total := 0.0
		for _, seg := range segments {
			total += seg.DistanceMeters
		}
		if total == 0 {
			elapsed += edgeSeconds
			continue
		}

		for _, seg := range segments {
			elapsed += edgeSeconds * seg.DistanceMeters / total
			engine.Accumulate(seg.DistanceMeters, seg.GradeDegrees, elapsed)
		}
	}

	engine.Accumulate(0, 0, elapsed)
	return engine.Totals()
}
