package weighting

import (
	"math"

	"github.com/lintang-b-s/ecorouting/pkg"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

const (
	CUSTOM_NAME = "custom"
)

/*
CustomWeighting time/priority weighting:

	weight = distance / (speed * priority) + distance * distance_influence

speed and priority come from the custom model, distance_influence adds a per meter cost that does not
depend on the edge. edges with speed 0 or priority 0 are not accessible and get an infinite weight.
*/
type CustomWeighting struct {
	turnCostProvider      TurnCostProvider
	edgeToSpeedMapping    EdgeToDoubleMapping
	edgeToPriorityMapping EdgeToDoubleMapping
	maxSpeedCalc          MaxCalc
	maxPrioCalc           MaxCalc
	headingPenaltySeconds float64
	distanceInfluence     float64 // s/m
}

func NewCustomWeighting(turnCostProvider TurnCostProvider, parameters Parameters) (*CustomWeighting, error) {
	if turnCostProvider == nil {
		turnCostProvider = NoTurnCostProvider
	}
	if parameters.EdgeToSpeedMapping == nil || parameters.EdgeToPriorityMapping == nil {
		return nil, util.ConfigErrorf("speed and priority mappings are required")
	}
	if parameters.MaxSpeedCalc == nil || parameters.MaxPrioCalc == nil {
		return nil, util.ConfigErrorf("max speed and max priority calculators are required")
	}

	// given unit is s/km -> convert to s/m
	distanceInfluence := parameters.DistanceInfluence / 1000.0
	if distanceInfluence < 0 {
		return nil, util.ConfigErrorf("distance_influence cannot be negative %v", distanceInfluence)
	}

	return &CustomWeighting{
		turnCostProvider:      turnCostProvider,
		edgeToSpeedMapping:    parameters.EdgeToSpeedMapping,
		edgeToPriorityMapping: parameters.EdgeToPriorityMapping,
		maxSpeedCalc:          parameters.MaxSpeedCalc,
		maxPrioCalc:           parameters.MaxPrioCalc,
		headingPenaltySeconds: parameters.HeadingPenaltySeconds,
		distanceInfluence:     distanceInfluence,
	}, nil
}

func (w *CustomWeighting) CalcMinWeightPerDistance() float64 {
	return 1.0/(w.maxSpeedCalc()/pkg.SPEED_CONV)/w.maxPrioCalc() + w.distanceInfluence
}

func (w *CustomWeighting) CalcEdgeWeight(edge EdgeState, reverse bool) (float64, error) {
	seconds, err := w.calcSeconds(edge.GetLength(), edge, reverse)
	if err != nil {
		return 0, err
	}
	if math.IsInf(seconds, 1) {
		return pkg.INF_WEIGHT, nil
	}

	priority := w.edgeToPriorityMapping(edge, reverse)
	if priority < 0 {
		return 0, util.WrapErrorf(nil, util.ErrInvalidInput, "priority cannot be negative, edge %d: %v",
			edge.GetEdgeId(), priority)
	}
	if priority == 0 {
		return pkg.INF_WEIGHT, nil
	}

	distanceCosts := edge.GetLength() * w.distanceInfluence
	weight := seconds/priority + distanceCosts

	if u, ok := edge.(unfavorable); ok && u.IsUnfavored(reverse) {
		weight += w.headingPenaltySeconds
	}
	return weight, nil
}

// Speed assigned to the edge by the custom model, km/h.
func (w *CustomWeighting) Speed(edge EdgeState, reverse bool) float64 {
	return w.edgeToSpeedMapping(edge, reverse)
}

func (w *CustomWeighting) calcSeconds(distance float64, edge EdgeState, reverse bool) (float64, error) {
	speed := w.edgeToSpeedMapping(edge, reverse)
	if speed == 0 {
		return pkg.INF_WEIGHT, nil
	}
	if speed < 0 {
		return 0, util.WrapErrorf(nil, util.ErrInvalidInput, "speed cannot be negative, edge %d: %v",
			edge.GetEdgeId(), speed)
	}

	return distance / speed * pkg.SPEED_CONV, nil
}

func (w *CustomWeighting) CalcEdgeMillis(edge EdgeState, reverse bool) (int64, error) {
	seconds, err := w.calcSeconds(edge.GetLength(), edge, reverse)
	if err != nil {
		return 0, err
	}
	return util.SecondsToMillis(seconds), nil
}

func (w *CustomWeighting) CalcTurnWeight(inEdge, viaNode, outEdge da.Index) float64 {
	return w.turnCostProvider.CalcTurnWeight(inEdge, viaNode, outEdge)
}

func (w *CustomWeighting) CalcTurnMillis(inEdge, viaNode, outEdge da.Index) int64 {
	return w.turnCostProvider.CalcTurnMillis(inEdge, viaNode, outEdge)
}

func (w *CustomWeighting) HasTurnCosts() bool {
	return w.turnCostProvider != NoTurnCostProvider
}

func (w *CustomWeighting) Name() string {
	return CUSTOM_NAME
}
