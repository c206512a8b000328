package rules

import (
	"fmt"
	"strings"

	"github.com/chazu/wingbox/pkg/topo"
)

// Inconsistency is a warning-level diagnostic from the post-evaluation
// audit: a face whose panel assignment did not work out as the rule
// program expects. The face keeps its construction-time tags; an
// inconsistency never aborts a run.
type Inconsistency struct {
	Key     topo.Key
	Message string
}

func (i Inconsistency) String() string {
	return fmt.Sprintf("%s: %s", i.Key, i.Message)
}

// Audit inspects the model after Apply and reports outer-skin faces that
// matched no panel rule, and structural faces that somehow gained one.
func Audit(m *topo.Model) []Inconsistency {
	var out []Inconsistency
	for _, f := range m.OfKind(topo.KindFace) {
		group, hasGroup := f.Tags.Get(topo.TagGroup)

		if f.Tags.Has(topo.TagOML) && !hasGroup {
			out = append(out, Inconsistency{
				Key:     f.Key,
				Message: "outer-skin face matched no panel rule; construction tags left as-is",
			})
		}

		if f.Tags.Has(topo.TagStructural) && hasGroup {
			if s, ok := group.AsString(); ok && strings.HasPrefix(s, "OML") {
				out = append(out, Inconsistency{
					Key:     f.Key,
					Message: fmt.Sprintf("structural face carries panel group %s", s),
				})
			}
		}
	}
	return out
}
