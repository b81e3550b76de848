package resolver

import (
	"context"
	"math/rand"

	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/geo"
	"github.com/sirupsen/logrus"
)

var defaultProjection = geo.LondonCentered(1000, 1000)

// Resolver runs the live, static, synthetic cascade. Nil tiers are skipped.
type Resolver struct {
	Live      Tier
	Static    Tier
	Synthetic Tier
}

// Tiers returns the tiers tried for mode, in order.
func (r *Resolver) Tiers(mode Mode) []Tier {
	var all []Tier
	switch mode {
	case ModeLive:
		all = []Tier{r.Live, r.Static, r.Synthetic}
	case ModeStatic:
		all = []Tier{r.Static, r.Synthetic}
	default:
		all = []Tier{r.Synthetic}
	}
	tiers := all[:0]
	for _, t := range all {
		if t != nil {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// Resolve returns the first catalog with a drivable route. If every tier
// falls through, a default synthetic network is generated, so the result is
// never empty.
func (r *Resolver) Resolve(ctx context.Context, mode Mode) *catalog.Catalog {
	for _, t := range r.Tiers(mode) {
		log := logrus.WithFields(logrus.Fields{"tier": t.Name(), "mode": mode})
		cat, err := t.Resolve(ctx)
		if err != nil {
			log.Warnf("data unavailable, falling through: %v", err)
			continue
		}
		if cat == nil || cat.DrivableCount() == 0 {
			log.Warn("tier produced no drivable routes, falling through")
			continue
		}
		log.Infof("resolved %d routes (%d placements)", cat.Len(), len(cat.Placements))
		return cat
	}
	logrus.WithField("mode", mode).Warn("all tiers fell through, using default synthetic network")
	fallback := NewSyntheticTier(rand.New(rand.NewSource(1)), DefaultSyntheticCounts(), defaultProjection)
	cat, _ := fallback.Resolve(ctx)
	return cat
}
