package topo

import (
	"fmt"
	"sort"
)

// Severity indicates whether a validation finding is a structural defect
// or merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // the model is inconsistent
	SeverityWarning                 // suspicious but usable
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single consistency problem in a Model.
type Finding struct {
	Key      Key
	Message  string
	Severity Severity
}

func (f Finding) Error() string {
	if f.Key == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Key, f.Message)
}

// Validate runs structural checks over the model: links must reference
// registered entities, faces should have bounding edges, edges should
// bound a face, vertices should terminate an edge. Read-only; an empty
// result means the model is consistent.
func Validate(m *Model) []Finding {
	var findings []Finding
	findings = append(findings, validateLinks(m)...)
	findings = append(findings, validateConnectivity(m)...)
	return findings
}

// validateLinks reports adjacency records naming keys that were never
// registered as entities.
func validateLinks(m *Model) []Finding {
	var findings []Finding

	for _, e := range m.Entities() {
		for _, k := range m.links[e.Key] {
			if m.entities[k] == nil {
				findings = append(findings, Finding{
					Key:      e.Key,
					Message:  fmt.Sprintf("linked to unregistered entity %q", k),
					Severity: SeverityError,
				})
			}
		}
	}

	// Links whose source side was never registered; sorted because these
	// come out of map iteration.
	var dangling []Key
	for k := range m.links {
		if m.entities[k] == nil {
			dangling = append(dangling, k)
		}
	}
	sort.Slice(dangling, func(i, j int) bool { return dangling[i] < dangling[j] })
	for _, k := range dangling {
		findings = append(findings, Finding{
			Key:      k,
			Message:  "adjacency recorded for unregistered entity",
			Severity: SeverityError,
		})
	}

	return findings
}

// validateConnectivity warns about entities left isolated by construction:
// a face with no bounding edges, an edge bounding no face, a vertex
// terminating no edge. Bodies participate in no adjacency and are skipped.
func validateConnectivity(m *Model) []Finding {
	var findings []Finding

	for _, e := range m.Entities() {
		switch e.Kind {
		case KindFace:
			if len(m.AdjacentOfKind(e.Key, KindEdge)) == 0 {
				findings = append(findings, Finding{
					Key:      e.Key,
					Message:  "face has no bounding edges",
					Severity: SeverityWarning,
				})
			}
		case KindEdge:
			if len(m.AdjacentOfKind(e.Key, KindFace)) == 0 {
				findings = append(findings, Finding{
					Key:      e.Key,
					Message:  "edge bounds no face",
					Severity: SeverityWarning,
				})
			}
		case KindVertex:
			if len(m.AdjacentOfKind(e.Key, KindEdge)) == 0 {
				findings = append(findings, Finding{
					Key:      e.Key,
					Message:  "vertex terminates no edge",
					Severity: SeverityWarning,
				})
			}
		}
	}

	return findings
}
