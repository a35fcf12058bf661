package spatialindex

import (
	"math"

	"github.com/lintang-b-s/ecorouting/pkg"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
	"github.com/lintang-b-s/ecorouting/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree vertex index used to snap query coordinates onto the graph. read only after Build.
type Rtree struct {
	tr    *rtree.RTreeG[da.Index]
	graph *da.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build inserts every vertex with a valid position as a point leaf.
func (rt *Rtree) Build(graph *da.Graph, log *zap.Logger) {
	rt.graph = graph
	skipped := 0
	for v := da.Index(0); v < da.Index(graph.NumberOfVertices()); v++ {
		p := graph.GetVertex(v).Point()
		if !p.IsValidLatLon() {
			skipped++
			continue
		}
		point := [2]float64{p.GetLon(), p.GetLat()}
		rt.tr.Insert(point, point, v)
	}
	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.tr.Len()), zap.Int("skipped", skipped))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius returns the vertices within radiusM meters of (qLat, qLon), unordered.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radiusM float64) []da.Index {
	lo, hi := boundingBox(qLat, qLon, radiusM)

	results := make([]da.Index, 0, 8)
	rt.tr.Search(lo, hi, func(_, _ [2]float64, v da.Index) bool {
		p := rt.graph.GetVertex(v).Point()
		if geo.EquirectangularDistanceMeters(qLat, qLon, p.GetLat(), p.GetLon()) <= radiusM {
			results = append(results, v)
		}
		return true
	})
	return results
}

// Nearest snaps (qLat, qLon) to the closest vertex within radiusM meters. ties go to the lower vertex id.
func (rt *Rtree) Nearest(qLat, qLon, radiusM float64) (da.Index, float64, error) {
	if !geo.NewPoint2D(qLat, qLon).IsValidLatLon() {
		return da.INVALID_VERTEX_ID, 0, util.WrapErrorf(nil, util.ErrBadParamInput,
			"invalid coordinate (%f, %f)", qLat, qLon)
	}

	best, bestDist := da.INVALID_VERTEX_ID, math.Inf(1)
	for _, v := range rt.SearchWithinRadius(qLat, qLon, radiusM) {
		p := rt.graph.GetVertex(v).Point()
		d := geo.EquirectangularDistanceMeters(qLat, qLon, p.GetLat(), p.GetLon())
		if d < bestDist || (d == bestDist && v < best) {
			best, bestDist = v, d
		}
	}
	if best == da.INVALID_VERTEX_ID {
		return best, 0, util.WrapErrorf(nil, util.ErrNotFound,
			"no vertex within %.0f m of (%f, %f)", radiusM, qLat, qLon)
	}
	return best, bestDist, nil
}

// boundingBox lon/lat box around the query point, widened in longitude by the latitude correction.
func boundingBox(lat, lon, radiusM float64) ([2]float64, [2]float64) {
	dLat := util.RadiansToDegree(radiusM / pkg.EARTH_RADIUS_M)
	cosLat := math.Cos(util.DegreeToRadians(lat))
	dLon := 180.0
	if cosLat > 1e-9 {
		dLon = math.Min(180.0, dLat/cosLat)
	}
	return [2]float64{lon - dLon, lat - dLat}, [2]float64{lon + dLon, lat + dLat}
}
