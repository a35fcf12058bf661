package routing

import (
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
)

const noParent = -1

// EdgeInfo search label of one directed edge state.
type EdgeInfo struct {
	weight     float64
	edgeWeight float64 // weight of the edge itself
	turnWeight float64 // turn from the parent edge into this one
	parent     int     // slot of the parent edge state, noParent at the source
	heapNode   *da.PriorityQueueNode[da.EdgeKey]
}

func NewEdgeInfo(weight, edgeWeight, turnWeight float64, parent int,
	heapNode *da.PriorityQueueNode[da.EdgeKey]) *EdgeInfo {
	return &EdgeInfo{
		weight:     weight,
		edgeWeight: edgeWeight,
		turnWeight: turnWeight,
		parent:     parent,
		heapNode:   heapNode,
	}
}

func (ei *EdgeInfo) GetWeight() float64 {
	return ei.weight
}

func (ei *EdgeInfo) GetParent() int {
	return ei.parent
}

func (ei *EdgeInfo) GetKey() da.EdgeKey {
	return ei.heapNode.GetItem()
}

func (ei *EdgeInfo) update(weight, edgeWeight, turnWeight float64, parent int) {
	ei.weight = weight
	ei.edgeWeight = edgeWeight
	ei.turnWeight = turnWeight
	ei.parent = parent
}
