package script

import (
	"fmt"
	"sort"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/wingbox/pkg/wing"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms wing DSL source before it reaches zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with script variables of the same name.
//
//  2. Kebab-case to underscore: spar-count -> spar_count. zygomys reads a
//     hyphen inside an identifier as subtraction, so kebab identifiers are
//     rewritten outside of strings and comments. Hyphens inside keywords
//     survive as part of the keyword name.
//
//  3. ; line comments become // comments, which is what zygomys expects.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments (and ;; style) to //.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters, so a
		// minus operator stays a minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks whether a Sexp is a preprocessed keyword string, returning
// the keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments. Keywords
// are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value is a flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// names returns the keyword names in sorted order, so error reporting does
// not depend on map iteration.
func (a kwArgs) names() []string {
	names := make([]string, 0, len(a.kw))
	for name := range a.kw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// sexpDist wraps a weight triple so (dist ...) results can be passed to
// the wing form's distribution keywords.
type sexpDist struct {
	d wing.Distribution
}

func (s *sexpDist) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(dist %g %g %g)", s.d.A1, s.d.A2, s.d.A3)
}
func (s *sexpDist) Type() *zygo.RegisteredType { return nil }

// toDist extracts a Distribution from a sexpDist.
func toDist(s zygo.Sexp) (wing.Distribution, error) {
	if d, ok := s.(*sexpDist); ok {
		return d.d, nil
	}
	return wing.Distribution{}, fmt.Errorf("expected (dist a1 a2 a3), got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector receives the parameters defined by the script's wing form.
type collector struct {
	params  *wing.DesignParameters
	defined bool
}

// registerBuiltins installs the wing DSL builtins into a zygomys
// environment. Source must be preprocessed with preprocessSource first so
// that :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, c *collector) {

	// -----------------------------------------------------------------------
	// (dist 1 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("dist", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("dist requires exactly 3 weights, got %d", len(args))
		}
		var w [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("dist: weight %d: %w", i+1, err)
			}
			w[i] = f
		}
		return &sexpDist{d: wing.Distribution{A1: w[0], A2: w[1], A3: w[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (wing :name "demo" :span 12 :root-chord 2.5 :tip-chord 1.25
	//       :sweep 15 :dihedral 3 :ribs 5 :spars 2
	//       :spar-dist (dist 0.6 0.4 0) :rib-dist (dist 1 0 0))
	//
	// Unspecified keywords keep their defaults. Unknown keywords are
	// rejected so typos cannot silently produce a default wing.
	// -----------------------------------------------------------------------
	env.AddFunction("wing", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("wing takes keyword arguments only, got %d positional", len(pa.positional))
		}
		if c.defined {
			return zygo.SexpNull, fmt.Errorf("wing: model already defined")
		}

		p := wing.Default()

		floats := map[string]*float64{
			"span":            &p.Span,
			"root-chord":      &p.RootChord,
			"tip-chord":       &p.TipChord,
			"sweep":           &p.Sweep,
			"dihedral":        &p.Dihedral,
			"root-thickness":  &p.RootThickness,
			"tip-thickness":   &p.TipThickness,
			"root-camber":     &p.RootCamber,
			"tip-camber":      &p.TipCamber,
			"max-camber-loc":  &p.MaxCamberLoc,
			"web-thickness":   &p.WebThickness,
			"shell-thickness": &p.ShellThickness,
		}
		ints := map[string]*int{
			"ribs":  &p.NumRibs,
			"spars": &p.NumSpars,
		}
		dists := map[string]*wing.Distribution{
			"spar-dist": &p.SparDist,
			"rib-dist":  &p.RibDist,
		}

		for _, kw := range pa.names() {
			v := pa.kw[kw]
			switch {
			case kw == "name":
				s, err := toString(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("wing: name: %w", err)
				}
				p.Name = s
			case floats[kw] != nil:
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("wing: %s: %w", kw, err)
				}
				*floats[kw] = f
			case ints[kw] != nil:
				n, err := toInt(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("wing: %s: %w", kw, err)
				}
				*ints[kw] = n
			case dists[kw] != nil:
				d, err := toDist(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("wing: %s: %w", kw, err)
				}
				*dists[kw] = d
			default:
				return zygo.SexpNull, fmt.Errorf("wing: unknown parameter :%s", kw)
			}
		}

		c.params = &p
		c.defined = true
		return zygo.SexpNull, nil
	})
}
