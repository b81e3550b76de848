package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Path identifies a topology source: a local file, a remote URL or a
// mongo collection written as "db.coll".
type Path struct {
	File string
	URL  string
	DB   string
	Coll string
}

// NewPath classifies a source string. An empty string yields a nil path.
func NewPath(fileURLOrColl string) (*Path, error) {
	s := strings.TrimSpace(fileURLOrColl)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return &Path{URL: s}, nil
	}
	if _, err := os.Stat(s); err == nil {
		return &Path{File: s}, nil
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".geojson", ".json", ".zip":
		return &Path{File: s}, nil
	}
	splitted := strings.Split(s, ".")
	if len(splitted) != 2 || splitted[0] == "" || splitted[1] == "" {
		return nil, fmt.Errorf("topology source is neither a file nor db.coll: %s", s)
	}
	return &Path{DB: splitted[0], Coll: splitted[1]}, nil
}

// IsMongo reports whether the path names a collection.
func (p *Path) IsMongo() bool {
	return p.DB != ""
}

// Location returns the file, URL or db.coll the path points at.
func (p *Path) Location() string {
	switch {
	case p.File != "":
		return p.File
	case p.URL != "":
		return p.URL
	default:
		return p.DB + "." + p.Coll
	}
}

func (p *Path) String() string {
	return p.Location()
}
