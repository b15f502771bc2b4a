package traits

import "slices"

// CurrentVersion es la versión de esquema que generamos y entendemos.
const CurrentVersion = 1

type PatternType string

const (
	PatternNone     PatternType = "none"
	PatternStriped  PatternType = "striped"
	PatternSpotted  PatternType = "spotted"
	PatternGradient PatternType = "gradient"
	PatternPatches  PatternType = "patches"
)

type Accessory string

const (
	AccessoryNone    Accessory = "none"
	AccessoryCrown   Accessory = "crown"
	AccessoryCollar  Accessory = "collar"
	AccessoryWings   Accessory = "wings"
	AccessoryBow     Accessory = "bow"
	AccessoryGlasses Accessory = "glasses"
	AccessoryHat     Accessory = "hat"
)

type BodySize string

const (
	SizeSmall  BodySize = "small"
	SizeMedium BodySize = "medium"
	SizeLarge  BodySize = "large"
)

type Expression string

const (
	ExpressionHappy       Expression = "happy"
	ExpressionNeutral     Expression = "neutral"
	ExpressionCurious     Expression = "curious"
	ExpressionMischievous Expression = "mischievous"
	ExpressionSleepy      Expression = "sleepy"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Tablas de valores. El orden es parte del contrato del generador: cambiarlo
// cambia los rasgos de todas las mascotas existentes.
var (
	patternTypes = []PatternType{PatternNone, PatternStriped, PatternSpotted, PatternGradient, PatternPatches}
	accessories  = []Accessory{AccessoryNone, AccessoryCrown, AccessoryCollar, AccessoryWings, AccessoryBow, AccessoryGlasses, AccessoryHat}
	bodySizes    = []BodySize{SizeSmall, SizeMedium, SizeLarge}
	expressions  = []Expression{ExpressionHappy, ExpressionNeutral, ExpressionCurious, ExpressionMischievous, ExpressionSleepy}
	rarities     = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary}
)

// Los accessors devuelven copias.
func PatternTypes() []PatternType { return slices.Clone(patternTypes) }
func Accessories() []Accessory    { return slices.Clone(accessories) }
func BodySizes() []BodySize       { return slices.Clone(bodySizes) }
func Expressions() []Expression   { return slices.Clone(expressions) }
func Rarities() []Rarity          { return slices.Clone(rarities) }

// PetTraits es el vector de rasgos visuales de una mascota.
// Se persiste como blob JSON opaco; traitVersion discrimina el esquema.
type PetTraits struct {
	BodyColor    HSLColor    `json:"bodyColor"`
	PatternType  PatternType `json:"patternType"`
	PatternColor *HSLColor   `json:"patternColor,omitempty"`
	Accessory    Accessory   `json:"accessory"`
	BodySize     BodySize    `json:"bodySize"`
	Expression   Expression  `json:"expression"`
	Rarity       Rarity      `json:"rarity"`
	TraitVersion int         `json:"traitVersion"`
}

// Colors devuelve los colores presentes (body y, si hay, pattern).
func (t PetTraits) Colors() []HSLColor {
	out := []HSLColor{t.BodyColor}
	if t.PatternColor != nil {
		out = append(out, *t.PatternColor)
	}
	return out
}
