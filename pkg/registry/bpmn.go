// pkg/registry/bpmn.go
package registry

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const zeebeNamespace = "http://camunda.org/schema/zeebe/1.0"

// BPMNTaskTypes returns the distinct zeebe:taskDefinition types referenced by
// a BPMN document, sorted.
func BPMNTaskTypes(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	seen := map[string]bool{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse bpmn: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Space != zeebeNamespace || start.Name.Local != "taskDefinition" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "type" && attr.Value != "" {
				seen[attr.Value] = true
			}
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types, nil
}

// UndeclaredTaskTypes scans every .bpmn file in dir and reports task types
// the registry does not declare, keyed by file name.
func (r *ActivityRegistry) UndeclaredTaskTypes(dir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	missing := map[string][]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".bpmn") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		types, err := BPMNTaskTypes(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		for _, t := range types {
			if !r.Has(t) {
				missing[e.Name()] = append(missing[e.Name()], t)
			}
		}
	}
	return missing, nil
}
