package traits

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Issue es una violación puntual del esquema.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones encontradas en una sola pasada.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "invalid traits: " + strings.Join(parts, "; ")
}

// ParseResult es la variante "safe" de Parse: nunca devuelve error, lo reporta.
type ParseResult struct {
	Success bool
	Data    PetTraits
	Error   *ValidationError
}

type checkFunc func(path string, v any) []Issue

type fieldRule struct {
	field    string
	required bool
	check    checkFunc
}

// schemaV1 es la tabla declarativa del esquema versión 1.
// Para agregar un campo basta con sumar una fila.
var schemaV1 = []fieldRule{
	{field: "bodyColor", required: true, check: checkColor},
	{field: "patternType", required: true, check: checkEnum(patternTypes)},
	{field: "patternColor", required: false, check: checkColor},
	{field: "accessory", required: true, check: checkEnum(accessories)},
	{field: "bodySize", required: true, check: checkEnum(bodySizes)},
	{field: "expression", required: true, check: checkEnum(expressions)},
	{field: "rarity", required: true, check: checkEnum(rarities)},
	{field: "traitVersion", required: true, check: checkInteger},
}

// crossRulesV1 validan relaciones entre campos.
var crossRulesV1 = []func(obj map[string]any) []Issue{
	checkPatternColorPresence,
}

// Parse valida candidate contra el esquema actual.
// Acepta map[string]any, PetTraits, *PetTraits, []byte o json.RawMessage.
func Parse(candidate any) (PetTraits, error) {
	obj, ok := toObject(candidate)
	if !ok {
		return PetTraits{}, &ValidationError{Issues: []Issue{{Message: "expected object"}}}
	}

	var issues []Issue
	for _, r := range schemaV1 {
		v, present := obj[r.field]
		if !present || v == nil {
			if r.required {
				issues = append(issues, Issue{Path: r.field, Message: "required"})
			}
			continue
		}
		issues = append(issues, r.check(r.field, v)...)
	}
	for _, cr := range crossRulesV1 {
		issues = append(issues, cr(obj)...)
	}

	if len(issues) > 0 {
		return PetTraits{}, &ValidationError{Issues: issues}
	}
	return build(obj), nil
}

// SafeParse es Parse sin error; el resultado indica éxito o las issues.
func SafeParse(candidate any) ParseResult {
	t, err := Parse(candidate)
	if err != nil {
		return ParseResult{Success: false, Error: err.(*ValidationError)}
	}
	return ParseResult{Success: true, Data: t}
}

// Validate valida un valor ya tipado.
func Validate(t PetTraits) error {
	_, err := Parse(t)
	return err
}

func toObject(candidate any) (map[string]any, bool) {
	switch c := candidate.(type) {
	case map[string]any:
		return c, true
	case []byte:
		return decodeObject(c)
	case json.RawMessage:
		return decodeObject(c)
	case PetTraits:
		b, err := json.Marshal(c)
		if err != nil {
			return nil, false
		}
		return decodeObject(b)
	case *PetTraits:
		if c == nil {
			return nil, false
		}
		return toObject(*c)
	default:
		return nil, false
	}
}

func decodeObject(b []byte) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func checkColor(path string, v any) []Issue {
	obj, ok := v.(map[string]any)
	if !ok {
		return []Issue{{Path: path, Message: "expected color object"}}
	}

	var issues []Issue
	issues = append(issues, checkRange(path+".h", obj["h"], 0, 360, false)...)
	issues = append(issues, checkRange(path+".s", obj["s"], 0, 100, true)...)
	issues = append(issues, checkRange(path+".l", obj["l"], 0, 100, true)...)
	return issues
}

// checkRange valida lo <= v < hi (o <= hi si inclusive).
func checkRange(path string, v any, lo, hi float64, inclusive bool) []Issue {
	if v == nil {
		return []Issue{{Path: path, Message: "required"}}
	}
	f, ok := toNumber(v)
	if !ok {
		return []Issue{{Path: path, Message: "expected number"}}
	}
	if f < lo || f > hi || (!inclusive && f == hi) {
		bound := ")"
		if inclusive {
			bound = "]"
		}
		return []Issue{{Path: path, Message: fmt.Sprintf("out of range [%g, %g%s: %g", lo, hi, bound, f)}}
	}
	return nil
}

func checkEnum[T ~string](allowed []T) checkFunc {
	return func(path string, v any) []Issue {
		s, ok := v.(string)
		if !ok {
			return []Issue{{Path: path, Message: "expected string"}}
		}
		for _, a := range allowed {
			if string(a) == s {
				return nil
			}
		}
		return []Issue{{Path: path, Message: fmt.Sprintf("unknown value %q", s)}}
	}
}

func checkInteger(path string, v any) []Issue {
	f, ok := toNumber(v)
	if !ok {
		return []Issue{{Path: path, Message: "expected number"}}
	}
	if f != math.Trunc(f) {
		return []Issue{{Path: path, Message: "expected integer"}}
	}
	return nil
}

// patternColor es obligatorio si hay patrón, y no debe venir si patternType es none.
func checkPatternColorPresence(obj map[string]any) []Issue {
	pt, ok := obj["patternType"].(string)
	if !ok {
		return nil
	}
	pc, present := obj["patternColor"]
	hasColor := present && pc != nil

	switch {
	case PatternType(pt) == PatternNone && hasColor:
		return []Issue{{Path: "patternColor", Message: "must be absent when patternType is none"}}
	case PatternType(pt) != PatternNone && !hasColor:
		return []Issue{{Path: "patternColor", Message: "required when patternType is not none"}}
	}
	return nil
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// build asume que obj ya pasó la validación.
func build(obj map[string]any) PetTraits {
	t := PetTraits{
		BodyColor:   buildColor(obj["bodyColor"]),
		PatternType: PatternType(obj["patternType"].(string)),
		Accessory:   Accessory(obj["accessory"].(string)),
		BodySize:    BodySize(obj["bodySize"].(string)),
		Expression:  Expression(obj["expression"].(string)),
		Rarity:      Rarity(obj["rarity"].(string)),
	}
	if pc, ok := obj["patternColor"]; ok && pc != nil {
		c := buildColor(pc)
		t.PatternColor = &c
	}
	v, _ := toNumber(obj["traitVersion"])
	t.TraitVersion = int(v)
	return t
}

func buildColor(v any) HSLColor {
	obj := v.(map[string]any)
	h, _ := toNumber(obj["h"])
	s, _ := toNumber(obj["s"])
	l, _ := toNumber(obj["l"])
	return HSLColor{Hue: h, Saturation: s, Lightness: l}
}
