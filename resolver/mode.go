package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmmx/roundel/catalog"
)

// Mode selects where the cascade starts.
type Mode string

const (
	ModeLive      Mode = "live"
	ModeStatic    Mode = "static"
	ModeSynthetic Mode = "synthetic"
)

// ParseMode parses a mode name, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLive, ModeStatic, ModeSynthetic:
		return m, nil
	default:
		return "", fmt.Errorf("unknown data source mode %q", s)
	}
}

// Async reports whether resolving this mode touches the network.
func (m Mode) Async() bool {
	return m == ModeLive
}

func (m Mode) String() string {
	return string(m)
}

// Tier is one source of routes.
type Tier interface {
	Name() string
	Resolve(ctx context.Context) (*catalog.Catalog, error)
}
