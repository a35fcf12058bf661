package routing

import (
	"math"
	"testing"

	"github.com/lintang-b-s/ecorouting/pkg"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripEmissions(t *testing.T) {
	g := newDiamondGraph(t)
	w := newCarbon(t)

	path, err := NewDijkstra(g, w).ShortestPath(source, target)
	require.NoError(t, err)
	require.True(t, path.Found)

	engine := w.Engine()
	wantFuel := 0.0
	for _, pe := range path.Edges {
		for _, seg := range geo.GradeSegments(pe.Edge.FetchWayGeometry(pkg.ALL)) {
			wantFuel += engine.SegmentEmissions(seg.DistanceMeters, seg.GradeDegrees).FuelLiters
		}
	}

	totals := TripEmissions(path, engine, pkg.ALL)

	p := engine.Profile()
	elapsed := float64(path.TimeMillis) / 1000
	assert.InDelta(t, path.Distance, totals.DistanceMeters, 1e-6)
	assert.InDelta(t, wantFuel, totals.FuelLiters, 1e-12)
	assert.InDelta(t, p.EmissionCO2*((wantFuel+p.IdleFuelUsageL*elapsed/3600)*p.FuelLToG), totals.CO2Grams, 1e-6)

	t.Run("replay resets the engine", func(t *testing.T) {
		again := TripEmissions(path, engine, pkg.ALL)
		assert.Equal(t, totals, again)
	})

	t.Run("climb burns more than the detour", func(t *testing.T) {
		detour := Path{Found: true}
		for _, id := range []da.Index{2, 3} {
			e := g.GetEdge(id)
			m, err := w.CalcEdgeMillis(e, false)
			require.NoError(t, err)
			detour.Edges = append(detour.Edges, PathEdge{Edge: e, Millis: m})
		}
		climb := Path{Found: true}
		for _, id := range []da.Index{0, 1} {
			e := g.GetEdge(id)
			m, err := w.CalcEdgeMillis(e, false)
			require.NoError(t, err)
			climb.Edges = append(climb.Edges, PathEdge{Edge: e, Millis: m})
		}

		assert.Greater(t, TripEmissions(climb, engine, pkg.ALL).FuelLiters,
			TripEmissions(detour, engine, pkg.ALL).FuelLiters)
	})
}

func TestTripEmissionsReverse(t *testing.T) {
	g := newDiamondGraph(t)
	engine, err := emission.NewEngine(emission.DefaultVehicleProfile(), nil)
	require.NoError(t, err)

	up := Path{Found: true, Edges: []PathEdge{{Edge: g.GetEdge(0), Millis: 20000}}}
	down := Path{Found: true, Edges: []PathEdge{{Edge: g.GetEdge(0), Reverse: true, Millis: 20000}}}

	assert.Greater(t, TripEmissions(up, engine, pkg.ALL).FuelLiters, TripEmissions(down, engine, pkg.ALL).FuelLiters)
}

func TestTripEmissionsWithoutElevation(t *testing.T) {
	g := da.NewGraph()
	a := g.AddVertex(0, 0, math.NaN())
	b := g.AddVertex(0, 0.01, math.NaN())
	id, err := g.AddEdge(a, b, 50, 50, pkg.PRIMARY, nil)
	require.NoError(t, err)

	engine, err := emission.NewEngine(emission.DefaultVehicleProfile(), nil)
	require.NoError(t, err)

	path := Path{Found: true, Edges: []PathEdge{
		{Edge: g.GetEdge(id), Millis: 60000, TurnMillis: 0},
		{Edge: g.GetEdge(id), Reverse: true, Millis: 60000, TurnMillis: 30000},
	}}
	totals := TripEmissions(path, engine, pkg.ALL)

	p := engine.Profile()
	assert.Equal(t, 0.0, totals.DistanceMeters)
	assert.Equal(t, 0.0, totals.FuelLiters)
	// idle fuel over 150 s only
	assert.InDelta(t, p.EmissionCO2*(p.IdleFuelUsageL*150/3600*p.FuelLToG), totals.CO2Grams, 1e-9)
}

func TestTripEmissionsEmptyPath(t *testing.T) {
	engine, err := emission.NewEngine(emission.DefaultVehicleProfile(), nil)
	require.NoError(t, err)

	assert.Equal(t, emission.Accumulator{}, TripEmissions(Path{Found: true}, engine, pkg.ALL))
}
