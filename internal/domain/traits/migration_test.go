package traits

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

func observedLoader() (*Loader, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewLoader(zap.New(core)), logs
}

func TestLoadTraits_NeverPanicsAndAlwaysValid(t *testing.T) {
	validTraits := GeneratePetTraits("someone-else")
	validJSON, err := json.Marshal(validTraits)
	require.NoError(t, err)

	broken := validObject()
	broken["bodyColor"] = map[string]any{"h": -5.0, "s": 50.0, "l": 50.0}

	future := validObject()
	future["traitVersion"] = 999.0

	inputs := map[string]any{
		"nil":           nil,
		"string":        "string",
		"number":        42,
		"empty object":  map[string]any{},
		"valid v1":      validObject(),
		"broken v1":     broken,
		"future":        future,
		"json null":     json.RawMessage("null"),
		"bad json":      []byte("{"),
		"valid json":    json.RawMessage(validJSON),
		"array":         []any{validObject()},
		"typed":         validTraits,
		"nil typed ptr": (*PetTraits)(nil),
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			var got PetTraits
			require.NotPanics(t, func() { got = LoadTraits(raw, "p") })
			assert.NoError(t, Validate(got))
		})
	}
}

func TestLoadTraits_ValidV1IsReturnedAsIs(t *testing.T) {
	obj := validObject()
	want, err := Parse(obj)
	require.NoError(t, err)

	l, logs := observedLoader()
	got := l.Load(obj, "p")

	assert.Equal(t, want, got)
	assert.NotEqual(t, GeneratePetTraits("p"), got)
	assert.Equal(t, 0, logs.Len())
}

func TestLoadTraits_FallbackIsIdempotent(t *testing.T) {
	a := LoadTraits(nil, "p")
	b := LoadTraits(nil, "p")
	assert.Equal(t, a, b)
	assert.Equal(t, GeneratePetTraits("p"), a)
}

func TestLoader_WarnsWithReason(t *testing.T) {
	cases := []struct {
		name   string
		raw    any
		reason string
	}{
		{"missing", nil, "traits missing"},
		{"not object", "str", "traits are not an object"},
		{"no version", map[string]any{"rarity": "rare"}, "traitVersion missing"},
		{"version not number", map[string]any{"traitVersion": "1"}, "traitVersion is not a number"},
		{"invalid v1", map[string]any{"traitVersion": 1.0}, "traits failed validation"},
		{"unknown version", map[string]any{"traitVersion": 2.0}, "unknown traitVersion"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, logs := observedLoader()
			got := l.Load(tc.raw, "pet-42")

			assert.Equal(t, GeneratePetTraits("pet-42"), got)
			entries := logs.FilterField(zap.String("reason", tc.reason)).All()
			require.Len(t, entries, 1)
			assert.Equal(t, "pet-42", entries[0].ContextMap()["pet_id"])
		})
	}
}

func TestLoader_ValidationIssuesAreLogged(t *testing.T) {
	l, logs := observedLoader()
	l.Load(map[string]any{"traitVersion": 1.0, "accessory": "cape"}, "p")

	entries := logs.FilterField(zap.String("reason", "traits failed validation")).All()
	require.Len(t, entries, 1)
	issues, ok := entries[0].ContextMap()["issues"].([]Issue)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(issues), 6)
}

func TestMigrateTraits_VersionDispatch(t *testing.T) {
	fractional := validObject()
	fractional["traitVersion"] = 1.5
	assert.Equal(t, GeneratePetTraits("p"), MigrateTraits(fractional, "p"))

	intVersion := validObject()
	intVersion["traitVersion"] = 1
	tr := MigrateTraits(intVersion, "p")
	assert.Equal(t, AccessoryCrown, tr.Accessory)
}

func TestLoadTraits_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.StringMatching(`[a-z0-9-]{1,24}`).Draw(rt, "petID")
		raw := rapid.OneOf(
			rapid.Just[any](nil),
			rapid.Map(rapid.String(), func(s string) any { return s }),
			rapid.Map(rapid.Float64(), func(f float64) any { return map[string]any{"traitVersion": f} }),
			rapid.Map(rapid.SliceOf(rapid.Byte()), func(b []byte) any { return b }),
		).Draw(rt, "raw")

		got := LoadTraits(raw, id)
		assert.NoError(rt, Validate(got))
	})
}

func TestLoader_ResolveReportsRegeneration(t *testing.T) {
	l, _ := observedLoader()

	future := validObject()
	future["traitVersion"] = 999.0
	broken := validObject()
	delete(broken, "rarity")

	tests := []struct {
		name        string
		raw         any
		regenerated bool
	}{
		{name: "valid v1", raw: validObject(), regenerated: false},
		{name: "typed v1", raw: GeneratePetTraits("p"), regenerated: false},
		{name: "unknown version", raw: future, regenerated: true},
		{name: "failed validation", raw: broken, regenerated: true},
		{name: "missing", raw: nil, regenerated: true},
		{name: "bad json", raw: []byte("{"), regenerated: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, regenerated := l.Resolve(tc.raw, "p")
			assert.Equal(t, tc.regenerated, regenerated)
			assert.Equal(t, CurrentVersion, got.TraitVersion)
		})
	}
}
