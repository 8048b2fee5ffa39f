package transit

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// SaveGraph writes a gob snapshot of the graph so construction is paid
// once per dataset version. The format is internal-only and makes no
// cross-version compatibility promise.
func SaveGraph(g *Graph, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "graph-*.gob")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(g); err != nil {
		tmp.Close()
		return fmt.Errorf("encode graph: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot temp file: %w", err)
	}

	// Rename last so a crash mid-write never leaves a truncated snapshot.
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadGraph reconstructs a graph from a snapshot written by SaveGraph.
func LoadGraph(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	g := NewGraph()
	if err := gob.NewDecoder(f).Decode(g); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return g, nil
}

// GraphExists reports whether a snapshot is present at the given path.
func GraphExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
