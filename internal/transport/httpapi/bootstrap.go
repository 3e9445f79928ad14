package httpapi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sagsin-net/heuristic/facade"
)

// LoadBootstrapSnapshot reads a YAML fixture at path (SNAPSHOT_BOOTSTRAP_FILE)
// and applies it to f, convenient for local runs and demos without a
// live collaborator feeding snapshots over the wire.
func LoadBootstrapSnapshot(f *facade.Facade, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("httpapi: read bootstrap snapshot: %w", err)
	}

	var w graphSnapshotWire
	if err := yaml.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("httpapi: parse bootstrap snapshot: %w", err)
	}

	result := f.ApplySnapshot(snapshotFromWire(w))
	if !result.Success {
		return fmt.Errorf("httpapi: apply bootstrap snapshot: %s", result.Message)
	}

	return nil
}
