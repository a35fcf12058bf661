package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

// elevation is encoded as the third dimension, at the same 1e5 precision as lat/lon
var codec3D = polyline.Codec{Dim: 3, Scale: 1e5}

func DecodePoints3D(encoded string) ([]Point3D, error) {
	coords, rest, err := codec3D.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode 3d polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode 3d polyline: %d trailing bytes", len(rest))
	}

	points := make([]Point3D, len(coords))
	for i, c := range coords {
		points[i] = NewPoint3D(c[0], c[1], c[2])
	}
	return points, nil
}

func EncodePoints3D(points []Point3D) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lon, p.Ele}
	}
	return string(codec3D.EncodeCoords(nil, coords))
}
