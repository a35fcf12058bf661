package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"time"

	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
	"github.com/lintang-b-s/ecorouting/pkg/emission"
	"github.com/lintang-b-s/ecorouting/pkg/engine"
	"github.com/lintang-b-s/ecorouting/pkg/logger"
	"github.com/lintang-b-s/ecorouting/pkg/util"
	"github.com/lintang-b-s/ecorouting/pkg/weighting"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "./data", "directory containing config.yaml")
	graphFile  = flag.String("graph", "", "graph fixture (json), overrides graph_file of config.yaml")
	profile    = flag.String("profile", "", "only route with this profile")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("ecoweight failed", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	viper.SetDefault("graph_file", "./data/graph.json")
	viper.SetDefault("workers", engine.DEFAULT_NUM_WORKERS)
	viper.SetDefault("externality_cache_size", engine.DEFAULT_EXTERNALITY_CACHE_SZ)
	viper.SetDefault("snap_radius_m", engine.DEFAULT_SNAP_RADIUS_M)
	viper.SetDefault("timeout", "60s")

	if err := util.ReadConfig(*configPath); err != nil {
		return err
	}

	vehicle := emission.DefaultVehicleProfile()
	if err := viper.UnmarshalKey("vehicle", &vehicle); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "decode vehicle")
	}

	var profiles []weighting.Profile
	if err := viper.UnmarshalKey("profiles", &profiles); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "decode profiles")
	}
	if len(profiles) == 0 {
		return util.ConfigErrorf("no profiles configured")
	}

	var queries []engine.Query
	if err := viper.UnmarshalKey("queries", &queries); err != nil {
		return util.WrapErrorf(err, util.ErrConfiguration, "decode queries")
	}

	graphPath := viper.GetString("graph_file")
	if *graphFile != "" {
		graphPath = *graphFile
	}
	log.Info("reading graph", zap.String("graphFile", graphPath))
	graph, err := da.LoadGraphFixture(graphPath)
	if err != nil {
		return err
	}

	re, err := engine.NewEngine(graph, profiles, vehicle, log,
		engine.WithNumWorkers(viper.GetInt("workers")),
		engine.WithExternalityCacheSize(viper.GetInt("externality_cache_size")),
		engine.WithSnapRadius(viper.GetFloat64("snap_radius_m")))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, viper.GetDuration("timeout"))
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range profiles {
		if *profile != "" && p.Name != *profile {
			continue
		}
		p := p
		g.Go(func() error {
			return routeProfile(ctx, re, p.Name, queries, log)
		})
	}
	return g.Wait()
}

// routeProfile runs every configured query with profileName. a query that names a profile only runs
// with that one.
func routeProfile(ctx context.Context, re *engine.Engine, profileName string, queries []engine.Query,
	log *zap.Logger) error {
	batch := make([]engine.Query, 0, len(queries))
	for _, q := range queries {
		if q.Profile != "" && q.Profile != profileName {
			continue
		}
		q.Profile = profileName
		batch = append(batch, q)
	}

	for _, res := range re.RouteBatch(ctx, batch) {
		q := res.Query
		if res.Err != nil {
			if errors.Is(res.Err, util.ErrConfiguration) {
				return res.Err
			}
			log.Warn("route failed",
				zap.String("profile", q.Profile),
				zap.Uint32("source", uint32(q.Source)),
				zap.Uint32("target", uint32(q.Target)),
				zap.Error(res.Err))
			continue
		}
		if !res.Found {
			log.Info("no route",
				zap.String("profile", q.Profile),
				zap.Uint32("source", uint32(res.Source)),
				zap.Uint32("target", uint32(res.Target)))
			continue
		}

		edgeIds := make([]uint32, len(res.EdgeIds))
		for i, id := range res.EdgeIds {
			edgeIds[i] = uint32(id)
		}
		log.Info("route",
			zap.String("profile", q.Profile),
			zap.String("weighting", res.Weighting),
			zap.Uint32("source", uint32(res.Source)),
			zap.Uint32("target", uint32(res.Target)),
			zap.Float64("weight", res.Weight),
			zap.Duration("travel_time", time.Duration(res.TimeMillis)*time.Millisecond),
			zap.Float64("distance_m", res.DistanceMeters),
			zap.Float64("fuel_l", res.Emissions.FuelLiters),
			zap.Float64("co2_g", res.Emissions.CO2Grams),
			zap.Uint32s("edges", edgeIds))
	}
	return nil
}
