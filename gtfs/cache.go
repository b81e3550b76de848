package gtfs

import (
	"bytes"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lmmx/roundel/topology"
)

// SerializeDataset encodes a dataset using gob encoding.
func SerializeDataset(d *topology.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeDataset decodes a dataset produced by SerializeDataset.
func DeserializeDataset(data []byte) (*topology.Dataset, error) {
	var d topology.Dataset
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if d.Lines == nil {
		d.Lines = map[string]*topology.Line{}
	}
	return &d, nil
}

// SaveDataset writes a serialized dataset to path.
func SaveDataset(path string, d *topology.Dataset) error {
	data, err := SerializeDataset(d)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadDataset reads a dataset written by SaveDataset.
func LoadDataset(path string) (*topology.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DeserializeDataset(data)
}

func (p *Provider) cachePath(includeBuses bool) string {
	if p.CacheDir == "" {
		return ""
	}
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%t|%g", p.Source, includeBuses, p.MinSpacingKM)))
	return filepath.Join(p.CacheDir, "gtfs-"+hex.EncodeToString(sum[:8])+".gob")
}
