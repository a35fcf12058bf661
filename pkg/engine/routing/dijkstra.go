package routing

import (
	"math"

	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/util"
	"github.com/lintang-b-s/ecorouting/pkg/weighting"
)

// Dijkstra edge-based one-to-one search. labels are kept per directed edge so turn weights between
// consecutive edges can be charged. one instance per goroutine, the weighting it holds is not shared.
type Dijkstra struct {
	graph     *da.Graph
	weighting weighting.Weighting

	info []*EdgeInfo
	pq   *da.MinHeap[da.EdgeKey]

	numSettledEdges int
}

func NewDijkstra(graph *da.Graph, w weighting.Weighting) *Dijkstra {
	return &Dijkstra{
		graph:     graph,
		weighting: w,
		pq:        da.NewFourAryHeap[da.EdgeKey](),
	}
}

func (d *Dijkstra) Preallocate() {
	maxSearchSize := 2 * d.graph.NumberOfEdges()
	d.info = make([]*EdgeInfo, maxSearchSize)
	d.pq.Preallocate(maxSearchSize)
	d.numSettledEdges = 0
}

func (d *Dijkstra) GetNumSettledEdges() int {
	return d.numSettledEdges
}

// ShortestPath least weight path from s to t. Path.Found is false when t cannot be reached.
// edge weight errors abort the search.
func (d *Dijkstra) ShortestPath(s, t da.Index) (Path, error) {
	n := d.graph.NumberOfVertices()
	if int(s) >= n || int(t) >= n {
		return Path{}, util.WrapErrorf(nil, util.ErrBadParamInput, "vertex out of range: %d -> %d", s, t)
	}
	if s == t {
		return Path{Found: true, Edges: []PathEdge{}}, nil
	}

	d.Preallocate()

	var err error
	d.graph.ForEdgesOf(s, func(e *da.Edge, reverse bool) {
		if err != nil {
			return
		}
		var edgeWeight float64
		edgeWeight, err = d.weighting.CalcEdgeWeight(e, reverse)
		if err != nil {
			return
		}
		d.relax(da.NewEdgeKey(e.GetEdgeId(), reverse), edgeWeight, edgeWeight, 0, noParent)
	})
	if err != nil {
		return Path{}, err
	}

	for !d.pq.IsEmpty() {
		node, _ := d.pq.ExtractMin()
		key := node.GetItem()
		d.numSettledEdges++

		label := d.info[key.Slot()]
		inEdge := d.graph.GetEdge(key.GetEdgeId())
		via := inEdge.GetHead(key.IsReverse())
		if via == t {
			return d.buildPath(key)
		}

		d.graph.ForEdgesOf(via, func(e *da.Edge, reverse bool) {
			if err != nil {
				return
			}

			turnWeight := 0.0
			if d.weighting.HasTurnCosts() {
				turnWeight = d.weighting.CalcTurnWeight(inEdge.GetEdgeId(), via, e.GetEdgeId())
				if math.IsInf(turnWeight, 1) {
					return
				}
			}

			var edgeWeight float64
			edgeWeight, err = d.weighting.CalcEdgeWeight(e, reverse)
			if err != nil {
				return
			}

			d.relax(da.NewEdgeKey(e.GetEdgeId(), reverse), label.GetWeight()+turnWeight+edgeWeight,
				edgeWeight, turnWeight, key.Slot())
		})
		if err != nil {
			return Path{}, err
		}
	}

	return Path{Found: false}, nil
}

func (d *Dijkstra) relax(key da.EdgeKey, weight, edgeWeight, turnWeight float64, parent int) {
	if math.IsInf(weight, 1) || math.IsNaN(weight) {
		return
	}

	slot := key.Slot()
	cur := d.info[slot]
	if cur == nil {
		node := da.NewPriorityQueueNode(weight, key)
		d.info[slot] = NewEdgeInfo(weight, edgeWeight, turnWeight, parent, node)
		d.pq.Insert(node)
		return
	}

	if weight >= cur.GetWeight() {
		return
	}
	cur.update(weight, edgeWeight, turnWeight, parent)
	_ = d.pq.DecreaseKey(cur.heapNode, weight)
}

func (d *Dijkstra) buildPath(last da.EdgeKey) (Path, error) {
	edges := make([]PathEdge, 0)
	slot := last.Slot()
	for slot != noParent {
		label := d.info[slot]
		key := label.GetKey()
		edges = append(edges, PathEdge{
			Edge:       d.graph.GetEdge(key.GetEdgeId()),
			Reverse:    key.IsReverse(),
			Weight:     label.edgeWeight,
			TurnWeight: label.turnWeight,
		})
		slot = label.GetParent()
	}
	edges = util.ReverseG(edges)

	path := Path{
		Found:  true,
		Edges:  edges,
		Weight: d.info[last.Slot()].GetWeight(),
	}
	for i := range path.Edges {
		pe := &path.Edges[i]
		millis, err := d.weighting.CalcEdgeMillis(pe.Edge, pe.Reverse)
		if err != nil {
			return Path{}, err
		}
		pe.Millis = millis
		if i > 0 && d.weighting.HasTurnCosts() {
			pe.TurnMillis = d.weighting.CalcTurnMillis(path.Edges[i-1].Edge.GetEdgeId(),
				path.Edges[i-1].Edge.GetHead(path.Edges[i-1].Reverse), pe.Edge.GetEdgeId())
		}

		path.TimeMillis = addMillis(addMillis(path.TimeMillis, pe.TurnMillis), pe.Millis)
		path.Distance += pe.Edge.GetLength()
	}
	return path, nil
}
