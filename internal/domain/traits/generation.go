package traits

// Rangos de generación. Son política del generador, no del validador
// (el esquema acepta todo [0,100]).
const (
	genSaturationMin = 50
	genSaturationMax = 90
	genLightnessMin  = 25
	genLightnessMax  = 75

	complementaryOffset = 180
	maxHueJitter        = 15
)

// rarityWeights: 70% common, 20% uncommon, 8% rare, 2% legendary.
var rarityWeights = []float64{70, 20, 8, 2}

// GeneratePetTraits deriva los rasgos de forma determinística a partir del id.
// Es pura: mismo id => mismo resultado, también entre reinicios.
func GeneratePetTraits(petID string) PetTraits {
	s := newStream(petID)

	body := drawColor(s, s.intRange(0, 359))

	pattern := pick(s, patternTypes)
	var patternColor *HSLColor
	if pattern != PatternNone {
		jitter := s.intRange(-maxHueJitter, maxHueJitter)
		hue := mod360(int(body.Hue) + complementaryOffset + jitter)
		c := drawColor(s, hue)
		patternColor = &c
	}

	return PetTraits{
		BodyColor:    body,
		PatternType:  pattern,
		PatternColor: patternColor,
		Accessory:    pick(s, accessories),
		BodySize:     pick(s, bodySizes),
		Expression:   pick(s, expressions),
		Rarity:       weighted(s, rarities, rarityWeights),
		TraitVersion: CurrentVersion,
	}
}

func drawColor(s *stream, hue int) HSLColor {
	return HSLColor{
		Hue:        float64(hue),
		Saturation: float64(s.intRange(genSaturationMin, genSaturationMax)),
		Lightness:  float64(s.intRange(genLightnessMin, genLightnessMax)),
	}
}

func mod360(h int) int {
	h %= 360
	if h < 0 {
		h += 360
	}
	return h
}
