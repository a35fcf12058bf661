package weighting

import (
	"math"

	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
	"github.com/lintang-b-s/ecorouting/pkg/util"
)

// ClampMode where an ExternalityWeighting floors its result at zero.
type ClampMode uint8

const (
	// CLAMP_TERM floors only the externality term, base + term is not clamped again
	CLAMP_TERM ClampMode = iota
	// CLAMP_COMBINED lets a negative term through and floors base + term
	CLAMP_COMBINED
)

// Externality extra cost of one edge traversal, in the same seconds-equivalent unit as the base weight.
type Externality struct {
	Term      float64
	Seconds   float64             // travel time over the valid sub-segments
	Emissions *emission.Emissions // nil for externalities that are not fuel based
}

// ExternalityFunc computes the externality of an edge from its geometry in traversal order and the
// speed (km/h) assigned to the edge. speed is always positive.
type ExternalityFunc func(points []geo.Point3D, speed float64) Externality

// EdgeWeight result of one edge evaluation with its breakdown.
type EdgeWeight struct {
	Weight      float64
	BaseWeight  float64
	Externality Externality
}

/*
ExternalityWeighting a CustomWeighting plus an externality term computed from the edge geometry:

	weight = base_weight + externality(geometry)

travel time, turn costs and the min weight per distance are those of the base weighting. with
CLAMP_COMBINED a downhill edge may weigh less than its base weight, so CalcMinWeightPerDistance is
not a lower bound for that mode.
*/
type ExternalityWeighting struct {
	*CustomWeighting
	name        string
	externality ExternalityFunc
	clamp       ClampMode
	fetchMode   pkg.FetchMode
	cache       *ExternalityCache
	cacheScope  string
}

type Option func(w *ExternalityWeighting)

// WithFetchMode which edge points feed the externality, default pkg.TOWER_ONLY.
func WithFetchMode(mode pkg.FetchMode) Option {
	return func(w *ExternalityWeighting) {
		w.fetchMode = mode
	}
}

// WithExternalityCache memoizes externalities per (scope, edge, direction). scope must differ
// between weightings that could compute a different externality for the same edge.
func WithExternalityCache(cache *ExternalityCache, scope string) Option {
	return func(w *ExternalityWeighting) {
		w.cache = cache
		w.cacheScope = scope
	}
}

func NewExternalityWeighting(name string, turnCostProvider TurnCostProvider, parameters Parameters,
	externality ExternalityFunc, clamp ClampMode, opts ...Option) (*ExternalityWeighting, error) {
	if name == "" {
		return nil, util.ConfigErrorf("weighting name is required")
	}
	if externality == nil {
		return nil, util.ConfigErrorf("externality function is required for weighting %s", name)
	}

	base, err := NewCustomWeighting(turnCostProvider, parameters)
	if err != nil {
		return nil, err
	}

	w := &ExternalityWeighting{
		CustomWeighting: base,
		name:            name,
		externality:     externality,
		clamp:           clamp,
		fetchMode:       pkg.TOWER_ONLY,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *ExternalityWeighting) CalcEdgeWeight(edge EdgeState, reverse bool) (float64, error) {
	ew, err := w.CalcEdgeWeightDetail(edge, reverse)
	if err != nil {
		return 0, err
	}
	return ew.Weight, nil
}

// CalcEdgeWeightDetail same as CalcEdgeWeight, with the base weight and externality breakdown.
func (w *ExternalityWeighting) CalcEdgeWeightDetail(edge EdgeState, reverse bool) (EdgeWeight, error) {
	baseWeight, err := w.CustomWeighting.CalcEdgeWeight(edge, reverse)
	if err != nil {
		return EdgeWeight{}, err
	}
	if math.IsInf(baseWeight, 1) {
		return EdgeWeight{Weight: baseWeight, BaseWeight: baseWeight}, nil
	}

	ext := w.calcExternality(edge, reverse)

	var weight float64
	switch w.clamp {
	case CLAMP_COMBINED:
		weight = util.NonNegative(baseWeight + ext.Term)
	default:
		ext.Term = util.NonNegative(ext.Term)
		weight = baseWeight + ext.Term
	}

	return EdgeWeight{
		Weight:      weight,
		BaseWeight:  baseWeight,
		Externality: ext,
	}, nil
}

func (w *ExternalityWeighting) calcExternality(edge EdgeState, reverse bool) Externality {
	var key externalityKey
	if w.cache != nil {
		key = newExternalityKey(w.cacheScope, edge.GetEdgeId(), reverse)
		if ext, ok := w.cache.get(key); ok {
			return ext
		}
	}

	points := edge.FetchWayGeometry(w.fetchMode)
	if reverse {
		points = util.ReverseG(points)
	}
	ext := w.externality(points, w.Speed(edge, reverse))

	if w.cache != nil {
		w.cache.add(key, ext)
	}
	return ext
}

func (w *ExternalityWeighting) Name() string {
	return w.name
}
