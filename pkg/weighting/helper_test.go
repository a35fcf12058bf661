package weighting

import (
	"math"
	"testing"

	"github.com/lintang-b-s/ecorouting/pkg"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
	"github.com/stretchr/testify/require"
)

// segment step along the equator, about 500 m
const testLonStep = 0.0045

type testEdge struct {
	id           da.Index
	speed        float64
	reverseSpeed float64
	priority     float64
	roadClass    pkg.OsmHighwayType
	geometry     []geo.Point3D
	length       float64
	unfavored    bool
}

// newTestEdge edge running east along the equator with one segment per elevation step.
// all points but the first and last are pillars.
func newTestEdge(id da.Index, speed float64, eles ...float64) *testEdge {
	points := make([]geo.Point3D, len(eles))
	for i, ele := range eles {
		points[i] = geo.NewPoint3D(0, float64(i)*testLonStep, ele)
	}
	return &testEdge{
		id:           id,
		speed:        speed,
		reverseSpeed: speed,
		priority:     1,
		roadClass:    pkg.PRIMARY,
		geometry:     points,
		length:       geo.PathLengthMeters(points),
	}
}

func (e *testEdge) GetEdgeId() da.Index {
	return e.id
}

func (e *testEdge) GetLength() float64 {
	return e.length
}

func (e *testEdge) GetBaseSpeed(reverse bool) float64 {
	if reverse {
		return e.reverseSpeed
	}
	return e.speed
}

func (e *testEdge) GetRoadClass() pkg.OsmHighwayType {
	return e.roadClass
}

func (e *testEdge) FetchWayGeometry(mode pkg.FetchMode) []geo.Point3D {
	points := make([]geo.Point3D, 0, len(e.geometry))
	if mode == pkg.TOWER_ONLY {
		return append(points, e.geometry[0], e.geometry[len(e.geometry)-1])
	}
	return append(points, e.geometry...)
}

func (e *testEdge) IsUnfavored(reverse bool) bool {
	return e.unfavored
}

func testParameters(maxSpeed float64) Parameters {
	return Parameters{
		EdgeToSpeedMapping: func(edge EdgeState, reverse bool) float64 {
			return edge.GetBaseSpeed(reverse)
		},
		EdgeToPriorityMapping: func(edge EdgeState, reverse bool) float64 {
			if te, ok := edge.(*testEdge); ok {
				return te.priority
			}
			return 1
		},
		MaxSpeedCalc: func() float64 {
			return maxSpeed
		},
		MaxPrioCalc: func() float64 {
			return 1
		},
		HeadingPenaltySeconds: DEFAULT_HEADING_PENALTY,
		DistanceInfluence:     DEFAULT_DISTANCE_INFLUENCE,
	}
}

func newTestEngine(t *testing.T) *emission.Engine {
	t.Helper()
	engine, err := emission.NewEngine(emission.DefaultVehicleProfile(), nil)
	require.NoError(t, err)
	return engine
}

// baseWeight expected custom weight of e with testParameters, priority 1 and no heading penalty.
func baseWeight(e *testEdge, reverse bool) float64 {
	return e.length/e.GetBaseSpeed(reverse)*pkg.SPEED_CONV + e.length*DEFAULT_DISTANCE_INFLUENCE/1000
}

type testRestrictions map[[3]da.Index]bool

func (r testRestrictions) IsRestricted(inEdge, viaNode, outEdge da.Index) bool {
	return r[[3]da.Index{inEdge, viaNode, outEdge}]
}

// testOrientation bearings per edge, identical at both ends.
type testOrientation struct {
	arrival   map[da.Index]float64
	departure map[da.Index]float64
}

func (o testOrientation) ArrivalBearing(edge, viaNode da.Index) float64 {
	return o.arrival[edge]
}

func (o testOrientation) DepartureBearing(edge, viaNode da.Index) float64 {
	return o.departure[edge]
}

type testEncoding struct {
	restrictions map[string]TurnRestrictionLookup
	orientation  OrientationLookup
	maxSpeed     float64
}

func newTestEncoding(maxSpeed float64) *testEncoding {
	return &testEncoding{
		restrictions: make(map[string]TurnRestrictionLookup),
		maxSpeed:     maxSpeed,
	}
}

func (em *testEncoding) TurnRestrictionEnc(key string) (TurnRestrictionLookup, bool) {
	tr, ok := em.restrictions[key]
	return tr, ok
}

func (em *testEncoding) OrientationEnc() (OrientationLookup, bool) {
	return em.orientation, em.orientation != nil
}

func (em *testEncoding) MaxSpeed() float64 {
	return em.maxSpeed
}

func isInf(v float64) bool {
	return math.IsInf(v, 1)
}
