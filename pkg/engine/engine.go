package engine

import (
	"context"
	"time"

	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/concurrent"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/engine/routing"
	"github.com/lintang-b-s/ecorouting/pkg/spatialindex"
	"github.com/lintang-b-s/ecorouting/pkg/util"
	"github.com/lintang-b-s/ecorouting/pkg/weighting"
	"go.uber.org/zap"
)

const (
	DEFAULT_NUM_WORKERS          = 4
	DEFAULT_EXTERNALITY_CACHE_SZ = 1 << 16
	// DEFAULT_SNAP_RADIUS_M max distance between a query coordinate and its snapped vertex
	DEFAULT_SNAP_RADIUS_M = 1000.0
)

type Coordinate struct {
	Lat float64 `mapstructure:"lat" json:"lat"`
	Lon float64 `mapstructure:"lon" json:"lon"`
}

// Query one routing request against a configured profile. SourcePoint / TargetPoint, when set, are
// snapped to the nearest vertex and override Source / Target.
type Query struct {
	Profile          string                 `mapstructure:"profile" json:"profile"`
	Source           da.Index               `mapstructure:"source" json:"source"`
	Target           da.Index               `mapstructure:"target" json:"target"`
	SourcePoint      *Coordinate            `mapstructure:"source_point" json:"source_point,omitempty"`
	TargetPoint      *Coordinate            `mapstructure:"target_point" json:"target_point,omitempty"`
	Hints            map[string]interface{} `mapstructure:"hints" json:"hints,omitempty"`
	DisableTurnCosts bool                   `mapstructure:"disable_turn_costs" json:"disable_turn_costs"`
}

type RouteResult struct {
	Query          Query
	Source         da.Index
	Target         da.Index
	Weighting      string
	Found          bool
	Weight         float64
	TimeMillis     int64
	DistanceMeters float64
	// Emissions trip totals over the full edge geometry, zero when no path was found
	Emissions emission.Accumulator
	EdgeIds   []da.Index
	Err       error
}

type Engine struct {
	graph      *da.Graph
	factory    *weighting.WeightingFactory
	vehicle    emission.VehicleProfile
	profiles   map[string]weighting.Profile
	cache      *weighting.ExternalityCache
	rtree      *spatialindex.Rtree
	snapRadius float64
	numWorkers int
	log        *zap.Logger
}

type engineOptions struct {
	numWorkers int
	cacheSize  int
	snapRadius float64
}

type EngineOption func(o *engineOptions)

func WithNumWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.numWorkers = n
	}
}

// WithSnapRadius max snapping distance in meters for coordinate queries.
func WithSnapRadius(radiusM float64) EngineOption {
	return func(o *engineOptions) {
		o.snapRadius = radiusM
	}
}

// WithExternalityCacheSize size of the shared externality cache, 0 disables it.
func WithExternalityCacheSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.cacheSize = size
	}
}

func NewEngine(graph *da.Graph, profiles []weighting.Profile, vehicle emission.VehicleProfile, log *zap.Logger,
	opts ...EngineOption) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	o := engineOptions{
		numWorkers: DEFAULT_NUM_WORKERS,
		cacheSize:  DEFAULT_EXTERNALITY_CACHE_SZ,
		snapRadius: DEFAULT_SNAP_RADIUS_M,
	}
	for _, opt := range opts {
		opt(&o)
	}

	profileMap := make(map[string]weighting.Profile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := profileMap[p.Name]; ok {
			return nil, util.ConfigErrorf("duplicate profile '%s'", p.Name)
		}
		if p.HasTurnCosts() {
			graph.RegisterTurnRestrictions(weighting.TurnRestrictionKey(p.Name))
		}
		profileMap[p.Name] = p
	}

	var factoryOpts []weighting.FactoryOption
	var cache *weighting.ExternalityCache
	if o.cacheSize > 0 {
		var err error
		cache, err = weighting.NewExternalityCache(o.cacheSize)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "externality cache")
		}
		factoryOpts = append(factoryOpts, weighting.WithSharedExternalityCache(cache))
	}

	factory, err := weighting.NewWeightingFactory(NewEncodingManager(graph), vehicle, log, factoryOpts...)
	if err != nil {
		return nil, err
	}

	if o.snapRadius <= 0 {
		return nil, util.ConfigErrorf("snap radius must be positive, got %f", o.snapRadius)
	}
	rt := spatialindex.NewRtree()
	rt.Build(graph, log)

	log.Info("routing engine ready",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("profiles", len(profileMap)),
		zap.Int("workers", o.numWorkers))

	return &Engine{
		graph:      graph,
		factory:    factory,
		vehicle:    vehicle,
		profiles:   profileMap,
		cache:      cache,
		rtree:      rt,
		snapRadius: o.snapRadius,
		numWorkers: o.numWorkers,
		log:        log,
	}, nil
}

func (e *Engine) GetGraph() *da.Graph {
	return e.graph
}

func (e *Engine) GetProfile(name string) (weighting.Profile, bool) {
	p, ok := e.profiles[name]
	return p, ok
}

// Route runs one query with a weighting built for it alone.
func (e *Engine) Route(q Query) (RouteResult, error) {
	res := RouteResult{Query: q}

	profile, ok := e.profiles[q.Profile]
	if !ok {
		return res, util.WrapErrorf(nil, util.ErrNotFound, "profile '%s' not found", q.Profile)
	}

	w, err := e.factory.CreateWeighting(profile, weighting.PMap(q.Hints), q.DisableTurnCosts)
	if err != nil {
		return res, err
	}
	res.Weighting = w.Name()

	res.Source, err = e.resolve(q.Source, q.SourcePoint)
	if err != nil {
		return res, err
	}
	res.Target, err = e.resolve(q.Target, q.TargetPoint)
	if err != nil {
		return res, err
	}

	path, err := routing.NewDijkstra(e.graph, w).ShortestPath(res.Source, res.Target)
	if err != nil {
		return res, err
	}
	if !path.Found {
		return res, nil
	}

	res.Found = true
	res.Weight = path.Weight
	res.TimeMillis = path.TimeMillis
	res.DistanceMeters = path.Distance
	res.EdgeIds = path.EdgeIds()

	engine, err := e.emissionEngineOf(w)
	if err != nil {
		return res, err
	}
	res.Emissions = routing.TripEmissions(path, engine, pkg.ALL)
	return res, nil
}

// resolve returns id, or the vertex nearest to point when one is given.
func (e *Engine) resolve(id da.Index, point *Coordinate) (da.Index, error) {
	if point == nil {
		return id, nil
	}
	v, dist, err := e.rtree.Nearest(point.Lat, point.Lon, e.snapRadius)
	if err != nil {
		return da.INVALID_VERTEX_ID, err
	}
	if ce := e.log.Check(zap.DebugLevel, "snapped query point"); ce != nil {
		ce.Write(zap.Float64("lat", point.Lat), zap.Float64("lon", point.Lon),
			zap.Uint32("vertex", uint32(v)), zap.Float64("distance_m", dist))
	}
	return v, nil
}

// emissionEngineOf reuses the engine owned by a carbon weighting, any other weighting gets a fresh one.
func (e *Engine) emissionEngineOf(w weighting.Weighting) (*emission.Engine, error) {
	if cw, ok := w.(*weighting.CarbonWeighting); ok {
		return cw.Engine(), nil
	}
	return emission.NewEngine(e.vehicle, e.log)
}

// RouteBatch runs queries on the worker pool. results keep the query order, per query errors are
// reported in RouteResult.Err. queries not started before ctx is done fail with ctx.Err().
func (e *Engine) RouteBatch(ctx context.Context, queries []Query) []RouteResult {
	start := time.Now()
	results := concurrent.Run(ctx, e.numWorkers, queries, func(ctx context.Context, q Query) RouteResult {
		if err := ctx.Err(); err != nil {
			return RouteResult{Query: q, Err: err}
		}
		res, err := e.Route(q)
		res.Err = err
		return res
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	fields := []zap.Field{
		zap.Int("queries", len(queries)),
		zap.Int("failed", failed),
		zap.Duration("took", time.Since(start)),
	}
	if e.cache != nil {
		fields = append(fields, zap.Int("cached_externalities", e.cache.Len()))
	}
	e.log.Info("batch routed", fields...)
	return results
}
