// Package export renders a built wing for its downstream consumers: a
// versioned tag report for the analysis tooling and a mesh JSON for the
// viewer. Both formats are deterministic so they can be diffed and kept
// under golden files.
package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/chazu/wingbox/pkg/topo"
)

// SchemaVersion identifies the tag-report wire format. The tag names and
// group id strings inside are a compatibility surface for downstream
// tooling; changing any of them requires a new version here.
const SchemaVersion = "wingbox/v1"

// colorPalette is a default palette used to assign distinct colors to
// tagged groups.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// AssignColors gives every grouped face a color hint, one palette entry per
// group in first-appearance order. Faces sharing a group share a color.
func AssignColors(m *topo.Model) {
	assigned := make(map[string]string)
	for _, f := range m.OfKind(topo.KindFace) {
		v, ok := f.Tags.Get(topo.TagGroup)
		if !ok {
			continue
		}
		group, _ := v.AsString()
		color, ok := assigned[group]
		if !ok {
			color = colorPalette[len(assigned)%len(colorPalette)]
			assigned[group] = color
		}
		f.Tags.Set(topo.TagColor, topo.String(color))
	}
}

// TagReport is the exported tag assignment of one model.
type TagReport struct {
	Schema   string       `json:"schema"`
	Model    string       `json:"model"`
	Entities []EntityTags `json:"entities"`
}

// EntityTags is one entity's row in the report.
type EntityTags struct {
	Key  string      `json:"key"`
	Kind string      `json:"kind"`
	Tags topo.TagSet `json:"tags"`
}

// BuildTagReport flattens the model into the report structure. Entities
// keep the model's insertion order; tag names sort within each entity, so
// the rendered report is byte-stable for a given model.
func BuildTagReport(m *topo.Model) *TagReport {
	r := &TagReport{Schema: SchemaVersion}
	for _, e := range m.Entities() {
		if e.Kind == topo.KindBody {
			r.Model = strings.TrimPrefix(string(e.Key), "body:")
		}
		r.Entities = append(r.Entities, EntityTags{
			Key:  string(e.Key),
			Kind: e.Kind.String(),
			Tags: e.Tags,
		})
	}
	return r
}

// WriteTagReport writes the model's tag report as indented JSON.
func WriteTagReport(w io.Writer, m *topo.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTagReport(m))
}
