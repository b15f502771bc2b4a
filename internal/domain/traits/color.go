package traits

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLColor es un color en HSL: hue en grados, saturation y lightness en porcentaje.
type HSLColor struct {
	Hue        float64 `json:"h"`
	Saturation float64 `json:"s"`
	Lightness  float64 `json:"l"`
}

// Umbrales de "color barroso": poca saturación en la franja media de luminosidad.
const (
	muddySaturationMax = 30
	muddyLightnessMin  = 40
	muddyLightnessMax  = 60
)

// IsMuddy indica si el color se ve gris/apagado.
func IsMuddy(c HSLColor) bool {
	return c.Saturation < muddySaturationMax &&
		c.Lightness > muddyLightnessMin &&
		c.Lightness < muddyLightnessMax
}

// ValidateColorHarmony devuelve false si alguno de los colores es barroso.
// La complementariedad de hue NO se valida acá; eso lo garantiza el generador.
func ValidateColorHarmony(colors []HSLColor) bool {
	for _, c := range colors {
		if IsMuddy(c) {
			return false
		}
	}
	return true
}

// HSLToString formatea el color tal como viene (sin clamp).
func HSLToString(c HSLColor) string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.Hue, c.Saturation, c.Lightness)
}

// HSLToHex convierte a "#rrggbb" (útil para UI y terminal).
func HSLToHex(c HSLColor) string {
	return colorful.Hsl(c.Hue, c.Saturation/100, c.Lightness/100).Clamped().Hex()
}

// HueDistance es la distancia circular entre dos hues, en [0, 180].
func HueDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
