// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"procurement-workers/internal/common/validation"
)

// LoadRegistry reads and indexes the activity registry at path.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

func ParseRegistry(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}

	reg.byTaskType = make(map[string]*Activity, len(reg.Activities))
	for i := range reg.Activities {
		a := &reg.Activities[i]
		if a.TaskType == "" {
			return nil, fmt.Errorf("activity %q has no taskType", a.ID)
		}
		if _, dup := reg.byTaskType[a.TaskType]; dup {
			return nil, fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		reg.byTaskType[a.TaskType] = a
	}
	return &reg, nil
}

// Lookup returns the activity declared for taskType.
func (r *ActivityRegistry) Lookup(taskType string) (*Activity, bool) {
	a, ok := r.byTaskType[taskType]
	return a, ok
}

// Has reports whether taskType is declared.
func (r *ActivityRegistry) Has(taskType string) bool {
	_, ok := r.byTaskType[taskType]
	return ok
}

// TaskTypes lists declared task types in file order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}

// CompileInputSchema compiles the activity's input schema. An activity without
// one returns nil.
func (a *Activity) CompileInputSchema() (*validation.Schema, error) {
	if len(a.InputSchema) == 0 {
		return nil, nil
	}
	s, err := validation.CompileMap(a.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("activity %s input schema: %w", a.ID, err)
	}
	return s, nil
}

// TimeoutDuration parses Timeout ("30s", "2m"). Empty or invalid yields fallback.
func (a *Activity) TimeoutDuration(fallback time.Duration) time.Duration {
	if a.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Validate checks that every activity carries the fields the worker manager
// relies on and that its input schema compiles.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool, len(r.Activities))
	for i := range r.Activities {
		a := &r.Activities[i]
		if a.ID == "" {
			return fmt.Errorf("activity %d has no id", i)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity id %q", a.ID)
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			return fmt.Errorf("activity %s has no displayName", a.ID)
		}
		if a.Category == "" {
			return fmt.Errorf("activity %s has no category", a.ID)
		}
		if a.Timeout != "" {
			if d, err := time.ParseDuration(a.Timeout); err != nil || d <= 0 {
				return fmt.Errorf("activity %s has invalid timeout %q", a.ID, a.Timeout)
			}
		}
		if _, err := a.CompileInputSchema(); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the registry as indented JSON, stamping LastUpdated.
func (r *ActivityRegistry) Save(path string) error {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
