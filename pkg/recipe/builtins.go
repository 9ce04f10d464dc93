package recipe

import (
	"fmt"
	"strings"

	"github.com/bricklab/brickscope/pkg/compose"
	"github.com/bricklab/brickscope/pkg/distribution"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms recipe source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: common-parts -> common_parts
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and line comments.
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
		// Convert ; line comments to // comments for zygomys.
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
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters (not a
		// minus operator).
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
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpEntry wraps a distribution.Entry so it can be returned from `entry`
// and consumed by `parts`/`colors`.
type sexpEntry struct {
	entry distribution.Entry
}

func (e *sexpEntry) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(entry %q %q %g)", e.entry.ID, e.entry.Name, e.entry.Weight)
}
func (e *sexpEntry) Type() *zygo.RegisteredType { return nil }

// sexpDist wraps a *distribution.Distribution so it can be passed between
// builtins.
type sexpDist struct {
	dist *distribution.Distribution
}

func (d *sexpDist) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(distribution %d entries)", d.dist.Len())
}
func (d *sexpDist) Type() *zygo.RegisteredType { return nil }

// sexpLayerRef wraps the index of a declared layer for error messages.
type sexpLayerRef struct {
	index int
	name  string
}

func (l *sexpLayerRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(layerref %d %q)", l.index, l.name)
}
func (l *sexpLayerRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
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

// parseArgs separates args into keyword and positional arguments.
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
				// Keyword at end with no value — treat as flag with nil.
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

// toInt extracts an int64 from a Sexp.
func toInt(s zygo.Sexp) (int64, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return v.Val, nil
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

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_fixed) and plain strings ("fixed").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toDist extracts a *distribution.Distribution from a sexpDist.
func toDist(s zygo.Sexp) (*distribution.Distribution, error) {
	if d, ok := s.(*sexpDist); ok {
		return d.dist, nil
	}
	return nil, fmt.Errorf("expected distribution, got %T (%s)", s, s.SexpString(nil))
}

// toMode converts a keyword or string to a composition Mode.
func toMode(s zygo.Sexp) (Mode, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected mode keyword (:fixed, :weighted): %w", err)
	}
	switch name {
	case "fixed":
		return ModeFixed, nil
	case "weighted":
		return ModeWeighted, nil
	}
	return 0, fmt.Errorf("invalid mode %q, expected fixed or weighted", name)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all recipe builtins into a zygomys environment.
// The builtins populate the provided Scene during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {

	// -----------------------------------------------------------------------
	// (entry "3001" "Brick 2x4" 1.0)
	// -----------------------------------------------------------------------
	env.AddFunction("entry", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("entry requires an id and a name")
		}

		id, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("entry: id: %w", err)
		}
		entryName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("entry: name: %w", err)
		}

		weight := 1.0
		if len(args) > 2 {
			weight, err = toFloat64(args[2])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("entry: weight: %w", err)
			}
			if weight < 0 {
				return zygo.SexpNull, fmt.Errorf("entry: weight must be non-negative, got %g", weight)
			}
		}

		return &sexpEntry{entry: distribution.Entry{ID: id, Name: entryName, Weight: weight}}, nil
	})

	// -----------------------------------------------------------------------
	// (parts (entry ...) (entry ...) ...)
	// (colors (entry ...) ...)
	// -----------------------------------------------------------------------
	distBuiltin := func(builtinName string) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			d := distribution.New()
			for i, a := range args {
				e, ok := a.(*sexpEntry)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: expected entry, got %T (%s)",
						builtinName, i, a, a.SexpString(nil))
				}
				d.Entries = append(d.Entries, e.entry)
			}
			if err := d.Validate(); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", builtinName, err)
			}
			return &sexpDist{dist: d}, nil
		}
	}
	env.AddFunction("parts", distBuiltin("parts"))
	env.AddFunction("colors", distBuiltin("colors"))

	// -----------------------------------------------------------------------
	// (common-parts) / (common-colors) — stock bucket presets.
	// Registered with underscores; the preprocessor converts the kebab
	// form in the source.
	// -----------------------------------------------------------------------
	env.AddFunction("common_parts", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpDist{dist: distribution.CommonParts()}, nil
	})
	env.AddFunction("common_colors", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpDist{dist: distribution.CommonColors()}, nil
	})

	// -----------------------------------------------------------------------
	// (layer "base" :parts (common-parts) :colors (common-colors)
	//        :count 40 :weight 1.0 :seed 7)
	// -----------------------------------------------------------------------
	env.AddFunction("layer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("layer requires a name argument")
		}
		layerName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("layer: name: %w", err)
		}

		l := compose.Layer{Name: layerName, Weight: 1.0}

		if v, ok := pa.kw["parts"]; ok {
			l.Parts, err = toDist(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("layer %q: parts: %w", layerName, err)
			}
		}
		if v, ok := pa.kw["colors"]; ok {
			l.Colors, err = toDist(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("layer %q: colors: %w", layerName, err)
			}
		}
		if v, ok := pa.kw["count"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("layer %q: count: %w", layerName, err)
			}
			if n < 0 {
				return zygo.SexpNull, fmt.Errorf("layer %q: count must be non-negative, got %d", layerName, n)
			}
			l.Count = int(n)
		}
		if v, ok := pa.kw["weight"]; ok {
			w, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("layer %q: weight: %w", layerName, err)
			}
			if w < 0 {
				return zygo.SexpNull, fmt.Errorf("layer %q: weight must be non-negative, got %g", layerName, w)
			}
			l.Weight = w
		}
		if v, ok := pa.kw["seed"]; ok {
			seed, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("layer %q: seed: %w", layerName, err)
			}
			l.Seed = &seed
		}

		if l.Parts == nil {
			return zygo.SexpNull, fmt.Errorf("layer %q: missing :parts distribution", layerName)
		}
		if l.Colors == nil {
			return zygo.SexpNull, fmt.Errorf("layer %q: missing :colors distribution", layerName)
		}

		scene.Layers = append(scene.Layers, l)
		return &sexpLayerRef{index: len(scene.Layers) - 1, name: layerName}, nil
	})

	// -----------------------------------------------------------------------
	// (scene :total 100 :seed 3 :mode :weighted)
	// (scene :parts (common-parts) :colors (common-colors) :total 50 :seed 3)
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if v, ok := pa.kw["parts"]; ok {
			d, err := toDist(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: parts: %w", err)
			}
			scene.Parts = d
		}
		if v, ok := pa.kw["colors"]; ok {
			d, err := toDist(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: colors: %w", err)
			}
			scene.Colors = d
		}
		if v, ok := pa.kw["total"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: total: %w", err)
			}
			scene.TotalPieces = int(n)
		}
		if v, ok := pa.kw["seed"]; ok {
			seed, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: seed: %w", err)
			}
			scene.Seed = &seed
		}
		if v, ok := pa.kw["mode"]; ok {
			m, err := toMode(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: mode: %w", err)
			}
			scene.Mode = m
		}

		return zygo.SexpNull, nil
	})
}
