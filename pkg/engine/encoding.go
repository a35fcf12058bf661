package engine

import (
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/weighting"
)

// graphEncoding exposes the encoded values of a da.Graph to the weighting factory.
type graphEncoding struct {
	graph *da.Graph
}

func NewEncodingManager(graph *da.Graph) weighting.EncodingManager {
	return graphEncoding{graph: graph}
}

func (ge graphEncoding) TurnRestrictionEnc(key string) (weighting.TurnRestrictionLookup, bool) {
	tr, ok := ge.graph.GetTurnRestrictions(key)
	if !ok {
		return nil, false
	}
	return tr, true
}

func (ge graphEncoding) OrientationEnc() (weighting.OrientationLookup, bool) {
	if !ge.graph.HasOrientation() {
		return nil, false
	}
	return ge.graph, true
}

func (ge graphEncoding) MaxSpeed() float64 {
	return ge.graph.MaxSpeed()
}
