package roundel

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmmx/roundel/config"
	"github.com/lmmx/roundel/gtfs"
	"github.com/lmmx/roundel/gtfsrt"
	"github.com/lmmx/roundel/live"
	"github.com/lmmx/roundel/resolver"
	"github.com/lmmx/roundel/topology"
	"github.com/sirupsen/logrus"
)

// OpenTopology picks a provider for a topology location:
//   - a .geojson file, or a .json file holding a FeatureCollection;
//   - a .json file holding an array of route sequences;
//   - a GTFS zip, local or remote;
//   - a mongo collection written as db.coll.
//
// An empty location yields a nil provider.
func OpenTopology(location string, src config.SourcesConfig) (topology.Provider, error) {
	path, err := topology.NewPath(location)
	if err != nil || path == nil {
		return nil, err
	}
	switch {
	case path.IsMongo():
		if src.MongoURI == "" {
			return nil, fmt.Errorf("topology %s is a collection but no mongoURI is configured", path)
		}
		return &topology.MongoProvider{
			URI:     src.MongoURI,
			DB:      path.DB,
			Coll:    path.Coll,
			Timeout: time.Duration(src.TimeoutMS) * time.Millisecond,
		}, nil
	case path.URL != "":
		return newGTFSProvider(path.URL, src), nil
	}
	switch strings.ToLower(filepath.Ext(path.File)) {
	case ".zip":
		return newGTFSProvider(path.File, src), nil
	case ".json":
		if looksLikeArray(path.File) {
			return &topology.RouteSequenceFile{Path: path.File}, nil
		}
		return &topology.GeoJSONProvider{Path: path.File}, nil
	case ".geojson":
		return &topology.GeoJSONProvider{Path: path.File}, nil
	default:
		return nil, fmt.Errorf("unsupported topology file %s", path.File)
	}
}

func newGTFSProvider(source string, src config.SourcesConfig) *gtfs.Provider {
	return &gtfs.Provider{
		Source:       source,
		CacheDir:     src.CacheDir,
		MinSpacingKM: src.MinSpacingKM,
	}
}

// looksLikeArray reports whether the first non-space byte of the file is '['.
// Unreadable files report false and fail later in Load.
func looksLikeArray(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head, _ := bufio.NewReader(f).Peek(512)
	head = bytes.TrimLeft(head, " \t\r\n\ufeff")
	return len(head) > 0 && head[0] == '['
}

// OpenLive returns every configured live provider.
func OpenLive(src config.SourcesConfig) []live.Provider {
	timeout := time.Duration(src.TimeoutMS) * time.Millisecond
	var providers []live.Provider
	if src.ArrivalsURL != "" {
		providers = append(providers, live.NewArrivalsClient(src.ArrivalsURL, timeout))
	}
	if src.GTFSRT.TripUpdatesURL != "" {
		providers = append(providers, gtfsrt.NewProvider(gtfsrt.NewClient(timeout), src.GTFSRT.TripUpdatesURL))
	}
	return providers
}

// Sources is a resolver plus the connections it holds open.
type Sources struct {
	Resolver *resolver.Resolver
	closers  []func(context.Context) error
}

// Close releases database connections opened by the topology provider.
func (s *Sources) Close(ctx context.Context) error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenSources wires the live, static and synthetic tiers from configuration.
// Tiers without a configured source are left nil and skipped by the cascade.
func OpenSources(cfg config.AppConfig) (*Sources, error) {
	src := cfg.Sources
	proj := ProjectionFromConfig(cfg.Projection)
	counts := resolver.SyntheticCounts{
		TrainRoutes:        cfg.Synthetic.TrainRoutes,
		RadialBusRoutes:    cfg.Synthetic.RadialBusRoutes,
		OrbitalBusRoutes:   cfg.Synthetic.OrbitalBusRoutes,
		CrossTownBusRoutes: cfg.Synthetic.CrossTownBusRoutes,
	}
	s := &Sources{Resolver: &resolver.Resolver{
		Synthetic: resolver.NewSyntheticTier(rand.New(rand.NewSource(cfg.Simulation.Seed)), counts, proj),
	}}

	provider, err := OpenTopology(src.Topology, src)
	if err != nil {
		return nil, fmt.Errorf("failed to open topology: %w", err)
	}
	var topo *resolver.TopologySource
	if provider != nil {
		topo = resolver.NewTopologySource(provider, src.IncludeBuses)
		s.Resolver.Static = &resolver.StaticTier{
			Topology:       topo,
			Projection:     proj,
			IncludeBuses:   src.IncludeBuses,
			SampleFallback: src.SampleFallback,
		}
		if m, ok := provider.(*topology.MongoProvider); ok {
			s.closers = append(s.closers, m.Close)
		}
		logrus.WithField("topology", src.Topology).Info("static tier enabled")
	}

	if providers := OpenLive(src); len(providers) > 0 {
		s.Resolver.Live = &resolver.LiveTier{
			Providers:  providers,
			Lines:      src.Lines,
			CapSeconds: src.PredictionCapSeconds,
			Projection: proj,
			Topology:   topo,
		}
		logrus.WithField("providers", len(providers)).Info("live tier enabled")
	}
	return s, nil
}
