package weighting

import (
	"github.com/lintang-b-s/ecorouting/pkg"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
)

// EdgeState read access to one graph edge. geometry is always returned in the stored (forward)
// direction, the reverse flag passed to a Weighting says which way the edge is traversed.
type EdgeState interface {
	GetEdgeId() da.Index
	// GetLength in meter
	GetLength() float64
	// GetBaseSpeed in km/h, before any custom model factor
	GetBaseSpeed(reverse bool) float64
	GetRoadClass() pkg.OsmHighwayType
	FetchWayGeometry(mode pkg.FetchMode) []geo.Point3D
}

// unfavorable is implemented by query-time edge states that carry a heading restriction.
type unfavorable interface {
	IsUnfavored(reverse bool) bool
}

// Weighting converts an edge traversal into a non-negative search cost.
type Weighting interface {
	// CalcMinWeightPerDistance lower bound of weight per meter over all edges
	CalcMinWeightPerDistance() float64
	CalcEdgeWeight(edge EdgeState, reverse bool) (float64, error)
	CalcEdgeMillis(edge EdgeState, reverse bool) (int64, error)
	CalcTurnWeight(inEdge, viaNode, outEdge da.Index) float64
	CalcTurnMillis(inEdge, viaNode, outEdge da.Index) int64
	HasTurnCosts() bool
	Name() string
}

type EdgeToDoubleMapping func(edge EdgeState, reverse bool) float64

type MaxCalc func() float64

// Parameters of the base time/priority weighting, produced by the custom model parser.
type Parameters struct {
	EdgeToSpeedMapping    EdgeToDoubleMapping // km/h
	EdgeToPriorityMapping EdgeToDoubleMapping
	MaxSpeedCalc          MaxCalc
	MaxPrioCalc           MaxCalc
	HeadingPenaltySeconds float64
	DistanceInfluence     float64 // s/km
}
