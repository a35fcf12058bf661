package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
)

type Index uint32

const (
	INVALID_EDGE_ID   Index = math.MaxUint32
	INVALID_VERTEX_ID Index = math.MaxUint32
)

type Vertex struct {
	lat float64
	lon float64
	ele float64 // meter, NaN if unknown
	id  Index
}

func NewVertex(lat, lon, ele float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		ele: ele,
		id:  id,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetEle() float64 {
	return v.ele
}

func (v *Vertex) Point() geo.Point3D {
	return geo.NewPoint3D(v.lat, v.lon, v.ele)
}

// Edge stored once for both directions, base -> adj is the forward direction.
type Edge struct {
	edgeId       Index
	baseNode     Index
	adjNode      Index
	dist         float64 // meter
	speed        float64 // km/h forward, 0 = no access
	reverseSpeed float64 // km/h backward, 0 = no access
	roadClass    pkg.OsmHighwayType
	tower        [2]geo.Point3D
	pillars      []geo.Point3D
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetBaseNode() Index {
	return e.baseNode
}

func (e *Edge) GetAdjNode() Index {
	return e.adjNode
}

// GetHead node reached when traversing the edge in the given direction.
func (e *Edge) GetHead(reverse bool) Index {
	if reverse {
		return e.baseNode
	}
	return e.adjNode
}

func (e *Edge) GetLength() float64 {
	return e.dist
}

func (e *Edge) GetBaseSpeed(reverse bool) float64 {
	if reverse {
		return e.reverseSpeed
	}
	return e.speed
}

func (e *Edge) GetRoadClass() pkg.OsmHighwayType {
	return e.roadClass
}

// FetchWayGeometry points in forward direction. pkg.TOWER_ONLY returns just base and adj node.
func (e *Edge) FetchWayGeometry(mode pkg.FetchMode) []geo.Point3D {
	if mode == pkg.TOWER_ONLY {
		return []geo.Point3D{e.tower[0], e.tower[1]}
	}
	points := make([]geo.Point3D, 0, len(e.pillars)+2)
	points = append(points, e.tower[0])
	points = append(points, e.pillars...)
	points = append(points, e.tower[1])
	return points
}

type turnKey struct {
	inEdge, viaNode, outEdge Index
}

// TurnRestrictions forbidden (inEdge, viaNode, outEdge) turns of one profile.
type TurnRestrictions struct {
	forbidden map[turnKey]struct{}
}

func (tr *TurnRestrictions) IsRestricted(inEdge, viaNode, outEdge Index) bool {
	_, ok := tr.forbidden[turnKey{inEdge, viaNode, outEdge}]
	return ok
}

// Graph small in-memory road graph with elevation, enough to drive a weighting through a search.
type Graph struct {
	vertices  []*Vertex
	edges     []*Edge
	adjacency [][]Index // vertex -> incident edge ids

	turnRestrictions map[string]*TurnRestrictions
	orientation      bool
	maxSpeed         float64
}

func NewGraph() *Graph {
	return &Graph{
		vertices:         make([]*Vertex, 0),
		edges:            make([]*Edge, 0),
		adjacency:        make([][]Index, 0),
		turnRestrictions: make(map[string]*TurnRestrictions),
	}
}

func (g *Graph) AddVertex(lat, lon, ele float64) Index {
	id := Index(len(g.vertices))
	g.vertices = append(g.vertices, NewVertex(lat, lon, ele, id))
	g.adjacency = append(g.adjacency, make([]Index, 0, 4))
	return id
}

// AddEdge adds an edge from base to adj through the pillar points. distance is the length of the
// geometry. speed and reverseSpeed are base speeds in km/h, 0 closes that direction.
func (g *Graph) AddEdge(base, adj Index, speed, reverseSpeed float64, roadClass pkg.OsmHighwayType,
	pillars []geo.Point3D) (Index, error) {
	if int(base) >= len(g.vertices) || int(adj) >= len(g.vertices) {
		return INVALID_EDGE_ID, fmt.Errorf("edge %d -> %d: vertex out of range", base, adj)
	}
	if speed < 0 || reverseSpeed < 0 {
		return INVALID_EDGE_ID, fmt.Errorf("edge %d -> %d: speed cannot be negative", base, adj)
	}

	e := &Edge{
		edgeId:       Index(len(g.edges)),
		baseNode:     base,
		adjNode:      adj,
		speed:        speed,
		reverseSpeed: reverseSpeed,
		roadClass:    roadClass,
		tower:        [2]geo.Point3D{g.vertices[base].Point(), g.vertices[adj].Point()},
		pillars:      pillars,
	}
	e.dist = geo.PathLengthMeters(e.FetchWayGeometry(pkg.ALL))

	g.edges = append(g.edges, e)
	g.adjacency[base] = append(g.adjacency[base], e.edgeId)
	if adj != base {
		g.adjacency[adj] = append(g.adjacency[adj], e.edgeId)
	}
	g.maxSpeed = math.Max(g.maxSpeed, math.Max(speed, reverseSpeed))
	return e.edgeId, nil
}

// ForEdgesOf calls handle for every edge leaving v, with the direction it has to be traversed in.
// a loop edge is reported in both directions.
func (g *Graph) ForEdgesOf(v Index, handle func(e *Edge, reverse bool)) {
	for _, eId := range g.adjacency[v] {
		e := g.edges[eId]
		if e.baseNode == v {
			handle(e, false)
		}
		if e.adjNode == v {
			handle(e, true)
		}
	}
}

func (g *Graph) GetEdge(id Index) *Edge {
	return g.edges[id]
}

func (g *Graph) GetVertex(id Index) *Vertex {
	return g.vertices[id]
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) MaxSpeed() float64 {
	return g.maxSpeed
}

func (g *Graph) AddTurnRestriction(key string, inEdge, viaNode, outEdge Index) {
	tr, ok := g.turnRestrictions[key]
	if !ok {
		tr = &TurnRestrictions{forbidden: make(map[turnKey]struct{})}
		g.turnRestrictions[key] = tr
	}
	tr.forbidden[turnKey{inEdge, viaNode, outEdge}] = struct{}{}
}

// RegisterTurnRestrictions makes the restriction table of key available even when it is still empty.
func (g *Graph) RegisterTurnRestrictions(key string) {
	if _, ok := g.turnRestrictions[key]; !ok {
		g.turnRestrictions[key] = &TurnRestrictions{forbidden: make(map[turnKey]struct{})}
	}
}

func (g *Graph) GetTurnRestrictions(key string) (*TurnRestrictions, bool) {
	tr, ok := g.turnRestrictions[key]
	return tr, ok
}

func (g *Graph) EnableOrientation() {
	g.orientation = true
}

func (g *Graph) HasOrientation() bool {
	return g.orientation
}

// ArrivalBearing bearing of the last segment of edge when it is traversed towards viaNode.
func (g *Graph) ArrivalBearing(edge, viaNode Index) float64 {
	points := g.orientedGeometry(edge, viaNode, true)
	n := len(points)
	return geo.BearingTo(points[n-2].Lat, points[n-2].Lon, points[n-1].Lat, points[n-1].Lon)
}

// DepartureBearing bearing of the first segment of edge when it is traversed away from viaNode.
func (g *Graph) DepartureBearing(edge, viaNode Index) float64 {
	points := g.orientedGeometry(edge, viaNode, false)
	return geo.BearingTo(points[0].Lat, points[0].Lon, points[1].Lat, points[1].Lon)
}

func (g *Graph) orientedGeometry(edge, viaNode Index, arriving bool) []geo.Point3D {
	e := g.edges[edge]
	points := e.FetchWayGeometry(pkg.ALL)
	// forward traversal arrives at adj and departs from base
	reverse := (arriving && e.adjNode != viaNode) || (!arriving && e.baseNode != viaNode)
	if !reverse {
		return points
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}
