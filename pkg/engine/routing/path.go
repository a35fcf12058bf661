package routing

import (
	"math"

	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
)

// PathEdge one traversed edge of a path.
type PathEdge struct {
	Edge       *da.Edge
	Reverse    bool
	Weight     float64
	TurnWeight float64 // turn from the previous edge into this one
	Millis     int64
	TurnMillis int64
}

type Path struct {
	Found      bool
	Edges      []PathEdge
	Weight     float64
	TimeMillis int64
	Distance   float64 // meter
}

func (p Path) EdgeIds() []da.Index {
	ids := make([]da.Index, len(p.Edges))
	for i, pe := range p.Edges {
		ids[i] = pe.Edge.GetEdgeId()
	}
	return ids
}

// addMillis saturates at math.MaxInt64.
func addMillis(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
