package traits

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func sampleTraits(n int) []PetTraits {
	out := make([]PetTraits, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, GeneratePetTraits(fmt.Sprintf("pet-%d", i)))
	}
	return out
}

func TestGeneratePetTraits_Deterministic(t *testing.T) {
	a := GeneratePetTraits("pet-1")
	b := GeneratePetTraits("pet-1")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same id produced different traits (-first +second):\n%s", diff)
	}
}

func TestStream_SameSeedSameSequence(t *testing.T) {
	s := newStream("pet-1")
	first := s.next()
	again := newStream("pet-1").next()
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, newStream("pet-2").next())
}

func TestGeneratePetTraits_Diversity(t *testing.T) {
	assert.NotEqual(t, GeneratePetTraits("pet-1"), GeneratePetTraits("pet-2"))

	seen := map[string]struct{}{}
	for _, tr := range sampleTraits(200) {
		seen[fmt.Sprintf("%+v %v", tr, tr.PatternColor)] = struct{}{}
	}
	assert.Greater(t, len(seen), 190, "too many collisions in a 200 sample")
}

func TestGeneratePetTraits_BodyColorRanges(t *testing.T) {
	for _, tr := range sampleTraits(2000) {
		c := tr.BodyColor
		require.GreaterOrEqual(t, c.Hue, 0.0)
		require.Less(t, c.Hue, 360.0)
		require.GreaterOrEqual(t, c.Saturation, 50.0)
		require.LessOrEqual(t, c.Saturation, 90.0)
		require.GreaterOrEqual(t, c.Lightness, 25.0)
		require.LessOrEqual(t, c.Lightness, 75.0)
		require.False(t, IsMuddy(c), "muddy body color %+v", c)
	}
}

func TestGeneratePetTraits_ComplementaryPatternColor(t *testing.T) {
	withPattern := 0
	for _, tr := range sampleTraits(2000) {
		if tr.PatternType == PatternNone {
			require.Nil(t, tr.PatternColor)
			continue
		}
		withPattern++
		require.NotNil(t, tr.PatternColor)
		d := HueDistance(tr.BodyColor.Hue, tr.PatternColor.Hue)
		require.GreaterOrEqual(t, d, 165.0, "body=%v pattern=%v", tr.BodyColor, *tr.PatternColor)
		require.LessOrEqual(t, d, 195.0)
		require.True(t, ValidateColorHarmony(tr.Colors()))
	}
	assert.Greater(t, withPattern, 0)
}

func TestGeneratePetTraits_CategoryCoverage(t *testing.T) {
	patterns := map[PatternType]int{}
	accessories := map[Accessory]int{}
	sizes := map[BodySize]int{}
	expressions := map[Expression]int{}

	const n = 3000
	for _, tr := range sampleTraits(n) {
		patterns[tr.PatternType]++
		accessories[tr.Accessory]++
		sizes[tr.BodySize]++
		expressions[tr.Expression]++
	}

	assert.GreaterOrEqual(t, len(patterns), 4)
	assert.Greater(t, patterns[PatternNone], n/20, "none must have non-trivial probability")
	assert.GreaterOrEqual(t, len(accessories), 5)
	assert.Contains(t, accessories, AccessoryNone)
	assert.Len(t, expressions, 5)

	for _, size := range BodySizes() {
		share := float64(sizes[size]) / n
		assert.InDelta(t, 1.0/3, share, 0.05, "size %s share %.3f", size, share)
	}
}

func TestGeneratePetTraits_RarityDistribution(t *testing.T) {
	const n = 10000
	counts := map[Rarity]int{}
	for _, tr := range sampleTraits(n) {
		counts[tr.Rarity]++
	}

	want := map[Rarity]float64{
		RarityCommon:    0.70,
		RarityUncommon:  0.20,
		RarityRare:      0.08,
		RarityLegendary: 0.02,
	}
	for r, p := range want {
		got := float64(counts[r]) / n
		assert.InDelta(t, p, got, 0.05, "rarity %s observed %.3f", r, got)
	}
}

func TestGeneratePetTraits_AlwaysValid_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.String().Draw(rt, "petID")
		tr := GeneratePetTraits(id)

		require.NoError(rt, Validate(tr))
		assert.Equal(rt, CurrentVersion, tr.TraitVersion)
		assert.Equal(rt, tr, GeneratePetTraits(id))
	})
}

func TestValueTables_CallersGetCopies(t *testing.T) {
	before := sampleTraits(50)

	patterns := PatternTypes()
	patterns[0] = PatternStriped
	acc := Accessories()
	acc[0] = AccessoryHat
	sizes := BodySizes()
	sizes[0] = SizeLarge
	expr := Expressions()
	expr[0] = ExpressionSleepy
	rar := Rarities()
	rar[0] = RarityLegendary

	assert.Equal(t, PatternNone, PatternTypes()[0])
	assert.Equal(t, RarityCommon, Rarities()[0])
	if diff := cmp.Diff(before, sampleTraits(50)); diff != "" {
		t.Fatalf("generation changed after mutating a copy (-before +after):\n%s", diff)
	}
	assert.NoError(t, Validate(GeneratePetTraits("pet-1")))
}
