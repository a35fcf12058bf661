package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquirectangularDistanceMeters(t *testing.T) {
	testCases := []struct {
		name                   string
		latA, lonA, latB, lonB float64
		want                   float64
		delta                  float64
	}{
		{
			name: "same point",
			latA: -6.2, lonA: 106.8, latB: -6.2, lonB: 106.8,
			want: 0, delta: 1e-12,
		},
		{
			name: "one thousandth of a degree along a meridian",
			latA: 0, lonA: 0, latB: 0.001, lonB: 0,
			want: 111.19, delta: 0.01,
		},
		{
			name: "east west shrinks with latitude",
			latA: 60, lonA: 0, latB: 60, lonB: 0.001,
			want: 55.60, delta: 0.01,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := EquirectangularDistanceMeters(tt.latA, tt.lonA, tt.latB, tt.lonB)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}

	t.Run("close to haversine on short segments", func(t *testing.T) {
		eq := EquirectangularDistanceMeters(-6.2, 106.8, -6.21, 106.81)
		hav := CalculateHaversineDistance(-6.2, 106.8, -6.21, 106.81) * 1000
		assert.InDelta(t, hav, eq, 0.01)
	})
}

func TestPathLengthMeters(t *testing.T) {
	points := []Point3D{
		NewPoint2D(0, 0),
		NewPoint2D(0.001, 0),
		NewPoint2D(math.NaN(), 0),
		NewPoint2D(0.002, 0),
		NewPoint2D(0.003, 0),
	}
	assert.InDelta(t, 2*111.19, PathLengthMeters(points), 0.02)
	assert.Equal(t, 0.0, PathLengthMeters(points[:1]))
	assert.Equal(t, 0.0, PathLengthMeters(nil))
}

func TestPointValidity(t *testing.T) {
	testCases := []struct {
		name          string
		p             Point3D
		wantValid     bool
		wantValidLatL bool
	}{
		{name: "full", p: NewPoint3D(-6.2, 106.8, 12), wantValid: true, wantValidLatL: true},
		{name: "no elevation", p: NewPoint2D(-6.2, 106.8), wantValid: false, wantValidLatL: true},
		{name: "infinite elevation", p: NewPoint3D(1, 1, math.Inf(1)), wantValid: false, wantValidLatL: true},
		{name: "latitude out of range", p: NewPoint3D(91, 0, 0), wantValid: false, wantValidLatL: false},
		{name: "longitude out of range", p: NewPoint3D(0, 181, 0), wantValid: false, wantValidLatL: false},
		{name: "nan latitude", p: NewPoint3D(math.NaN(), 0, 0), wantValid: false, wantValidLatL: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantValid, tt.p.IsValid())
			assert.Equal(t, tt.wantValidLatL, tt.p.IsValidLatLon())
		})
	}
}

func TestGradeSegments(t *testing.T) {
	points := []Point3D{
		NewPoint3D(0, 0, 100),
		NewPoint3D(0, 0.001, 110),
		NewPoint3D(0, 0.002, 110),
		NewPoint2D(0, 0.003),
		NewPoint3D(0, 0.004, 90),
		NewPoint3D(0, 0.005, 80),
	}

	segs := GradeSegments(points)
	require.Len(t, segs, 3)

	dist := EquirectangularDistanceMeters(0, 0, 0, 0.001)
	assert.InDelta(t, dist, segs[0].DistanceMeters, 1e-9)
	assert.Equal(t, 10.0, segs[0].RiseMeters)
	assert.InDelta(t, math.Atan2(10, dist)*180/math.Pi, segs[0].GradeDegrees, 1e-9)
	assert.Greater(t, segs[0].GradeDegrees, 0.0)

	assert.Equal(t, 0.0, segs[1].GradeDegrees)

	assert.Equal(t, -10.0, segs[2].RiseMeters)
	assert.Less(t, segs[2].GradeDegrees, 0.0)

	assert.InDelta(t, 0.0, NetElevationGain(points), 1e-12)
	assert.Empty(t, GradeSegments([]Point3D{NewPoint3D(0, 0, 1)}))
}

func TestNetElevationGain(t *testing.T) {
	testCases := []struct {
		name string
		eles []float64
		want float64
	}{
		{name: "climb", eles: []float64{0, 5, 15}, want: 15},
		{name: "ascent then equal descent", eles: []float64{10, 40, 10}, want: 0},
		{name: "descent", eles: []float64{50, 20}, want: -30},
		{name: "single point", eles: []float64{50}, want: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]Point3D, len(tt.eles))
			for i, ele := range tt.eles {
				points[i] = NewPoint3D(0, float64(i)*0.001, ele)
			}
			assert.InDelta(t, tt.want, NetElevationGain(points), 1e-12)
		})
	}
}

func TestPolyline3D(t *testing.T) {
	points := []Point3D{
		NewPoint3D(-6.17511, 106.82715, 7.5),
		NewPoint3D(-6.17602, 106.82893, 9),
		NewPoint3D(-6.17744, 106.83001, 12.25),
	}

	encoded := EncodePoints3D(points)
	decoded, err := DecodePoints3D(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(points))
	for i := range points {
		assert.InDelta(t, points[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, points[i].Lon, decoded[i].Lon, 1e-5)
		assert.InDelta(t, points[i].Ele, decoded[i].Ele, 1e-5)
	}

	_, err = DecodePoints3D(encoded + "_")
	assert.Error(t, err)
}

func TestTurnAngle(t *testing.T) {
	testCases := []struct {
		name    string
		in, out float64
		want    float64
	}{
		{name: "straight", in: 90, out: 90, want: 0},
		{name: "left from north to west", in: 0, out: 270, want: 90},
		{name: "right from north to east", in: 0, out: 90, want: -90},
		{name: "wraps around north", in: 350, out: 10, want: -20},
		{name: "reversal is positive 180", in: 0, out: 180, want: 180},
		{name: "reversal the other way", in: 180, out: 0, want: 180},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TurnAngle(tt.in, tt.out), 1e-9)
		})
	}
}

func TestBearingTo(t *testing.T) {
	assert.InDelta(t, 0.0, BearingTo(0, 0, 1, 0), 1e-9)
	assert.InDelta(t, 90.0, BearingTo(0, 0, 0, 1), 1e-9)
	assert.InDelta(t, 180.0, BearingTo(1, 0, 0, 0), 1e-9)
	assert.InDelta(t, 270.0, BearingTo(0, 1, 0, 0), 1e-9)
}
