// Package seed provides the ticket data a session starts from. Nothing is ever written
// back; reloading a seed resets the session.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ticketdesk/internal/model"
	"ticketdesk/internal/statusutil"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// Data is the content of a seed file. Assignees is only a convenience for YAML anchors
// and is not used after loading.
type Data struct {
	Assignees []model.Assignee `json:"assignees,omitempty" yaml:"assignees,omitempty"`
	Tickets   []model.Ticket   `json:"tickets" yaml:"tickets"`
	Messages  []model.Message  `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Sample returns the embedded sample data.
func Sample() (*Data, error) {
	d, err := ParseYAML(sampleYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded sample: %w", err)
	}
	return d, nil
}

// Load reads a seed file; an empty path means the embedded sample. The format follows
// the extension: .yaml/.yml, or .json/.jsonc (comments and trailing commas allowed).
func Load(path string) (*Data, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Sample()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var d *Data
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		d, err = ParseYAML(b)
	case ".json", ".jsonc":
		d, err = ParseJSONC(b)
	default:
		return nil, fmt.Errorf("%s: unsupported seed format %q (expected .yaml, .yml, .json or .jsonc)", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func ParseYAML(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := d.normalize(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseJSONC strips comments and trailing commas, then decodes the JSON.
func ParseJSONC(b []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(jsonc.ToJSON(b), &d); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := d.normalize(); err != nil {
		return nil, err
	}
	return &d, nil
}

// normalize canonicalizes status and category spellings and rejects tickets the
// store could not hold: missing or duplicate IDs, unknown statuses or categories.
func (d *Data) normalize() error {
	seen := make(map[string]struct{}, len(d.Tickets))
	for i := range d.Tickets {
		t := &d.Tickets[i]
		t.ID = strings.TrimSpace(t.ID)
		if t.ID == "" {
			return fmt.Errorf("ticket #%d: missing id", i+1)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("ticket %s: duplicate id", t.ID)
		}
		seen[t.ID] = struct{}{}

		st, err := statusutil.Normalize(string(t.Status))
		if err != nil {
			return fmt.Errorf("ticket %s: %w", t.ID, err)
		}
		if st == "" {
			st = model.StatusOpen
		}
		t.Status = st

		cat, err := statusutil.NormalizeCategory(string(t.Category))
		if err != nil {
			return fmt.Errorf("ticket %s: %w", t.ID, err)
		}
		t.Category = cat

		if t.UpdatedAt == "" {
			t.UpdatedAt = t.CreatedAt
		}
		if t.AssignedTo != nil && strings.TrimSpace(t.AssignedTo.ID) == "" && strings.TrimSpace(t.AssignedTo.Name) == "" {
			t.AssignedTo = nil
		}
	}
	for i := range d.Messages {
		m := &d.Messages[i]
		if m.ID == "" {
			m.ID = fmt.Sprintf("msg-%03d", i+1)
		}
		if m.Source == "" {
			m.Source = model.SourceOther
		}
	}
	return nil
}
