package weighting

import (
	"math"
	"testing"

	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
	"github.com/lintang-b-s/ecorouting/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCarbonWeighting(t *testing.T, opts ...Option) *CarbonWeighting {
	t.Helper()
	w, err := NewCarbonWeighting(nil, testParameters(100), newTestEngine(t), opts...)
	require.NoError(t, err)
	return w
}

func newTestElevationWeighting(t *testing.T, opts ...Option) *ExternalityWeighting {
	t.Helper()
	w, err := NewElevationWeighting(nil, testParameters(100), opts...)
	require.NoError(t, err)
	return w
}

func TestCarbonWeighting(t *testing.T) {
	w := newTestCarbonWeighting(t)
	engine := w.Engine()

	testCases := []struct {
		name    string
		edge    *testEdge
		reverse bool
		grade   float64 // sign of the expected grade
	}{
		{
			name:  "flat",
			edge:  newTestEdge(0, 60, 100, 100),
			grade: 0,
		},
		{
			name:  "uphill",
			edge:  newTestEdge(1, 60, 100, 120),
			grade: 1,
		},
		{
			name:  "downhill",
			edge:  newTestEdge(2, 60, 120, 100),
			grade: -1,
		},
		{
			name:    "uphill edge traversed in reverse",
			edge:    newTestEdge(3, 60, 100, 120),
			reverse: true,
			grade:   -1,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := w.CalcEdgeWeightDetail(tt.edge, tt.reverse)
			require.NoError(t, err)
			require.NotNil(t, detail.Externality.Emissions)

			seg := detail.Externality.Emissions
			assert.InDelta(t, tt.edge.length, seg.DistanceMeters, 1e-9)
			switch {
			case tt.grade > 0:
				assert.Greater(t, seg.GradeDegrees, 0.0)
			case tt.grade < 0:
				assert.Less(t, seg.GradeDegrees, 0.0)
			default:
				assert.Equal(t, 0.0, seg.GradeDegrees)
			}

			want := engine.SegmentEmissions(seg.DistanceMeters, seg.GradeDegrees)
			assert.InDelta(t, want.CO2Grams, seg.CO2Grams, 1e-9)

			term := want.CO2Grams / CO2_BASELINE_G * CO2_FACTOR_MULTIPLIER
			assert.InDelta(t, baseWeight(tt.edge, tt.reverse), detail.BaseWeight, 1e-9)
			assert.InDelta(t, baseWeight(tt.edge, tt.reverse)+term, detail.Weight, 1e-9)
			assert.InDelta(t, tt.edge.length/60*pkg.SPEED_CONV, detail.Externality.Seconds, 1e-9)

			weight, err := w.CalcEdgeWeight(tt.edge, tt.reverse)
			require.NoError(t, err)
			assert.Equal(t, detail.Weight, weight)
		})
	}

	t.Run("uphill costs more than flat and flat more than downhill", func(t *testing.T) {
		up, err := w.CalcEdgeWeight(newTestEdge(0, 60, 0, 20), false)
		require.NoError(t, err)
		flat, err := w.CalcEdgeWeight(newTestEdge(0, 60, 0, 0), false)
		require.NoError(t, err)
		down, err := w.CalcEdgeWeight(newTestEdge(0, 60, 20, 0), false)
		require.NoError(t, err)

		assert.Greater(t, up, flat)
		assert.Greater(t, flat, down)
	})
}

func TestCarbonWeightingIsNeverBelowBase(t *testing.T) {
	w := newTestCarbonWeighting(t, WithFetchMode(pkg.ALL))

	edges := []*testEdge{
		newTestEdge(0, 60, 500, 0),
		newTestEdge(1, 60, 0, 300, 0, 300),
		newTestEdge(2, 5, 0, 0, 0),
		newTestEdge(3, 100, 100, 90, 80, 70),
	}
	minPerMeter := w.CalcMinWeightPerDistance()

	for _, e := range edges {
		for _, reverse := range []bool{false, true} {
			detail, err := w.CalcEdgeWeightDetail(e, reverse)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, detail.Externality.Term, 0.0)
			assert.GreaterOrEqual(t, detail.Weight, detail.BaseWeight)
			assert.GreaterOrEqual(t, detail.Weight, e.length*minPerMeter)
		}
	}
}

func TestCarbonWeightingMinWeightPerDistance(t *testing.T) {
	w := newTestCarbonWeighting(t)
	custom, err := NewCustomWeighting(nil, testParameters(100))
	require.NoError(t, err)

	assert.Equal(t, custom.CalcMinWeightPerDistance(), w.CalcMinWeightPerDistance())
}

func TestCarbonWeightingMissingElevation(t *testing.T) {
	w := newTestCarbonWeighting(t)

	e := newTestEdge(0, 60, math.NaN(), 100)
	detail, err := w.CalcEdgeWeightDetail(e, false)
	require.NoError(t, err)

	assert.Equal(t, 0.0, detail.Externality.Term)
	assert.Equal(t, 0.0, detail.Externality.Emissions.DistanceMeters)
	assert.InDelta(t, baseWeight(e, false), detail.Weight, 1e-9)
}

func TestCarbonWeightingFetchMode(t *testing.T) {
	// hill in the middle, towers at the same elevation
	e := newTestEdge(0, 60, 0, 50, 0)

	towerOnly := newTestCarbonWeighting(t)
	all := newTestCarbonWeighting(t, WithFetchMode(pkg.ALL))

	wTower, err := towerOnly.CalcEdgeWeightDetail(e, false)
	require.NoError(t, err)
	wAll, err := all.CalcEdgeWeightDetail(e, false)
	require.NoError(t, err)

	assert.Equal(t, 0.0, wTower.Externality.Emissions.GradeDegrees)
	assert.Greater(t, wAll.Weight, wTower.Weight)
}

func TestExternalityWeightingInaccessible(t *testing.T) {
	weightings := map[string]Weighting{
		CARBON_NAME:    newTestCarbonWeighting(t),
		ELEVATION_NAME: newTestElevationWeighting(t),
	}

	for name, w := range weightings {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, w.Name())

			e := newTestEdge(0, 0, 0, 100)
			weight, err := w.CalcEdgeWeight(e, false)
			require.NoError(t, err)
			assert.True(t, isInf(weight))

			millis, err := w.CalcEdgeMillis(e, false)
			require.NoError(t, err)
			assert.Equal(t, int64(math.MaxInt64), millis)

			_, err = w.CalcEdgeWeight(newTestEdge(0, -5, 0, 100), false)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}
}

func TestElevationWeighting(t *testing.T) {
	w := newTestElevationWeighting(t, WithFetchMode(pkg.ALL))

	testCases := []struct {
		name     string
		edge     *testEdge
		reverse  bool
		wantTerm float64
	}{
		{
			name:     "flat",
			edge:     newTestEdge(0, 60, 100, 100),
			wantTerm: 0,
		},
		{
			name:     "uphill",
			edge:     newTestEdge(0, 60, 100, 110),
			wantTerm: 10 / ELEVATION_BASELINE_M * ELEVATION_FACTOR_MULTIPLIER,
		},
		{
			name:     "ascent then equal descent",
			edge:     newTestEdge(0, 60, 100, 130, 100),
			wantTerm: 0,
		},
		{
			name:     "downhill in reverse",
			edge:     newTestEdge(0, 60, 100, 110),
			reverse:  true,
			wantTerm: -10 / ELEVATION_BASELINE_M * ELEVATION_FACTOR_MULTIPLIER,
		},
		{
			name:     "segment without elevation is skipped",
			edge:     newTestEdge(0, 60, 100, 110, math.NaN(), 500),
			wantTerm: 10 / ELEVATION_BASELINE_M * ELEVATION_FACTOR_MULTIPLIER,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := w.CalcEdgeWeightDetail(tt.edge, tt.reverse)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantTerm, detail.Externality.Term, 1e-9)
			assert.Nil(t, detail.Externality.Emissions)
			assert.InDelta(t, baseWeight(tt.edge, tt.reverse)+tt.wantTerm, detail.Weight, 1e-9)
		})
	}
}

func TestElevationWeightingClampsCombined(t *testing.T) {
	w := newTestElevationWeighting(t)

	// about 500 m at 100 km/h: base weight ~53 s, a 200 m drop is ~-18 s
	steep := newTestEdge(0, 100, 200, 0)
	detail, err := w.CalcEdgeWeightDetail(steep, false)
	require.NoError(t, err)
	assert.Less(t, detail.Externality.Term, 0.0)
	assert.InDelta(t, detail.BaseWeight+detail.Externality.Term, detail.Weight, 1e-9)

	// a drop larger than the base weight floors at zero
	cliff := newTestEdge(0, 100, 2000, 0)
	detail, err = w.CalcEdgeWeightDetail(cliff, false)
	require.NoError(t, err)
	assert.Less(t, detail.BaseWeight+detail.Externality.Term, 0.0)
	assert.Equal(t, 0.0, detail.Weight)
}

func TestExternalityCache(t *testing.T) {
	cache, err := NewExternalityCache(16)
	require.NoError(t, err)

	calls := 0
	counting := func(points []geo.Point3D, speed float64) Externality {
		calls++
		return elevationExternality(points, speed)
	}
	w, err := NewExternalityWeighting("counting", nil, testParameters(100), counting, CLAMP_COMBINED,
		WithExternalityCache(cache, "truck"))
	require.NoError(t, err)

	e := newTestEdge(7, 60, 0, 10)
	first, err := w.CalcEdgeWeight(e, false)
	require.NoError(t, err)
	second, err := w.CalcEdgeWeight(e, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())

	reverse, err := w.CalcEdgeWeight(e, true)
	require.NoError(t, err)
	assert.Less(t, reverse, first)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, cache.Len())

	other, err := NewExternalityWeighting("counting", nil, testParameters(100), counting, CLAMP_COMBINED,
		WithExternalityCache(cache, "car"))
	require.NoError(t, err)
	_, err = other.CalcEdgeWeight(e, false)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestNewExternalityWeightingConfig(t *testing.T) {
	_, err := NewExternalityWeighting("", nil, testParameters(100), elevationExternality, CLAMP_TERM)
	assert.ErrorIs(t, err, util.ErrConfiguration)

	_, err = NewExternalityWeighting("x", nil, testParameters(100), nil, CLAMP_TERM)
	assert.ErrorIs(t, err, util.ErrConfiguration)

	p := testParameters(100)
	p.DistanceInfluence = -5
	_, err = NewCarbonWeighting(nil, p, newTestEngine(t))
	assert.ErrorIs(t, err, util.ErrConfiguration)
}
