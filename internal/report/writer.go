// Package report writes engine artifacts to disk as canonical JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/engine"
)

// WriteJSON serializes v as canonical JSON (sorted object keys, compact) and
// writes it to path with a trailing newline. Parent directories are created
// as needed. Canonical output keeps artifact bytes reproducible across runs.
func WriteJSON(path string, v any) error {
	data, err := engine.CanonicalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to serialize artifact: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadJSON loads a JSON artifact from path into out.
func ReadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
