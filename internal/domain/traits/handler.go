package traits

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MaxSeedLength acota el seed del preview (no es un ID persistido).
const MaxSeedLength = 128

func RegisterRoutes(r chi.Router) {
	r.Get("/traits/preview", previewHandler())
}

type previewResponse struct {
	Seed            string    `json:"seed"`
	Traits          PetTraits `json:"traits"`
	BodyColorCSS    string    `json:"bodyColorCss"`
	BodyColorHex    string    `json:"bodyColorHex"`
	PatternColorCSS string    `json:"patternColorCss,omitempty"`
	PatternColorHex string    `json:"patternColorHex,omitempty"`
	Harmonious      bool      `json:"harmonious"`
}

// previewHandler godoc
// @Summary Previsualizar rasgos
// @Description Genera los rasgos que obtendría una mascota con el seed indicado. Es determinístico: el mismo seed siempre devuelve lo mismo. No requiere autenticación y no persiste nada.
// @Tags traits
// @Produce json
// @Param seed query string true "Seed (1-128 caracteres)"
// @Success 200 {object} previewResponse
// @Failure 400 {string} string "seed is required"
// @Router /traits/preview [get]
func previewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed := strings.TrimSpace(r.URL.Query().Get("seed"))
		if seed == "" || len(seed) > MaxSeedLength {
			http.Error(w, "seed is required (max 128 chars)", http.StatusBadRequest)
			return
		}

		t := GeneratePetTraits(seed)
		out := previewResponse{
			Seed:         seed,
			Traits:       t,
			BodyColorCSS: HSLToString(t.BodyColor),
			BodyColorHex: HSLToHex(t.BodyColor),
			Harmonious:   ValidateColorHarmony(t.Colors()),
		}
		if t.PatternColor != nil {
			out.PatternColorCSS = HSLToString(*t.PatternColor)
			out.PatternColorHex = HSLToHex(*t.PatternColor)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
