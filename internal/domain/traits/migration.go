package traits

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Loader es la puerta de entrada para rasgos persistidos.
// Los rasgos son cache derivada del id: ante cualquier dato raro se regeneran,
// nunca se propaga un error al caller.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log.Named("traits")}
}

var defaultLoader = NewLoader(nil)

// LoadTraits usa un Loader sin logging.
func LoadTraits(raw any, petID string) PetTraits {
	return defaultLoader.Load(raw, petID)
}

// MigrateTraits usa un Loader sin logging.
func MigrateTraits(obj map[string]any, petID string) PetTraits {
	return defaultLoader.Migrate(obj, petID)
}

// Load acepta cualquier cosa que haya salido del storage, sin tipar.
// []byte / json.RawMessage se decodifican como JSON antes de evaluar.
func (l *Loader) Load(raw any, petID string) PetTraits {
	t, _ := l.Resolve(raw, petID)
	return t
}

// Resolve es Load informando si hubo que regenerar; en ese caso el caller
// debería reemplazar lo guardado.
func (l *Loader) Resolve(raw any, petID string) (PetTraits, bool) {
	switch v := raw.(type) {
	case nil:
		return l.regenerate(petID, "traits missing")
	case json.RawMessage:
		return l.loadJSON(v, petID)
	case []byte:
		return l.loadJSON(v, petID)
	case map[string]any:
		if v == nil {
			return l.regenerate(petID, "traits missing")
		}
		return l.migrate(v, petID)
	case PetTraits:
		return l.loadTyped(v, petID)
	case *PetTraits:
		if v == nil {
			return l.regenerate(petID, "traits missing")
		}
		return l.loadTyped(*v, petID)
	default:
		return l.regenerate(petID, "traits are not an object", zap.String("type", typeName(raw)))
	}
}

func (l *Loader) loadJSON(b []byte, petID string) (PetTraits, bool) {
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return l.regenerate(petID, "traits are not valid json", zap.Error(err))
	}
	if decoded == nil {
		return l.regenerate(petID, "traits missing")
	}
	return l.Resolve(decoded, petID)
}

func (l *Loader) loadTyped(t PetTraits, petID string) (PetTraits, bool) {
	obj, ok := toObject(t)
	if !ok {
		return l.regenerate(petID, "traits are not an object")
	}
	return l.migrate(obj, petID)
}

// Migrate despacha por traitVersion. Cada versión nueva es un case nuevo;
// el default siempre regenera.
func (l *Loader) Migrate(obj map[string]any, petID string) PetTraits {
	t, _ := l.migrate(obj, petID)
	return t
}

func (l *Loader) migrate(obj map[string]any, petID string) (PetTraits, bool) {
	rawVersion, present := obj["traitVersion"]
	if !present || rawVersion == nil {
		return l.regenerate(petID, "traitVersion missing")
	}
	version, ok := toNumber(rawVersion)
	if !ok {
		return l.regenerate(petID, "traitVersion is not a number", zap.Any("traitVersion", rawVersion))
	}

	switch version {
	case 1:
		t, err := Parse(obj)
		if err != nil {
			return l.regenerate(petID, "traits failed validation", zap.Any("issues", issuesOf(err)))
		}
		return t, false
	// TODO: case 2 cuando exista el esquema v2 (migrar v1 -> v2 en vez de regenerar).
	default:
		return l.regenerate(petID, "unknown traitVersion", zap.Float64("traitVersion", version))
	}
}

func (l *Loader) regenerate(petID, reason string, fields ...zap.Field) (PetTraits, bool) {
	fields = append(fields, zap.String("pet_id", petID), zap.String("reason", reason))
	l.log.Warn("regenerating pet traits", fields...)
	return GeneratePetTraits(petID), true
}

func issuesOf(err error) []Issue {
	if ve, ok := err.(*ValidationError); ok {
		return ve.Issues
	}
	return []Issue{{Message: err.Error()}}
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}
