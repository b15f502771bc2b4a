package pets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"virtual-pet/internal/domain/stats"
	"virtual-pet/internal/domain/traits"
	"virtual-pet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Get("/{petID}/traits", getTraitsHandler(svc))

		// Acciones de cuidado (solo owner; rechazadas en estado crítico)
		pr.Post("/{petID}/feed", careHandler(svc.Feed))
		pr.Post("/{petID}/play", careHandler(svc.Play))
		pr.Post("/{petID}/chat", careHandler(svc.Chat))

		pr.Post("/{petID}/revive", reviveHandler(svc))
	})
}

type createPetRequest struct {
	Name                  string `json:"name"`
	TimezoneOffsetMinutes int    `json:"timezone_offset_minutes"` // minutos al este de UTC, opcional
}

type statsResponse struct {
	Health             int `json:"health"`
	Hunger             int `json:"hunger"`
	Happiness          int `json:"happiness"`
	Energy             int `json:"energy"`
	MaxHealthPenalty   int `json:"max_health_penalty"`
	EffectiveMaxHealth int `json:"effective_max_health"`
}

type petResponse struct {
	ID                    string        `json:"id"`
	OwnerUserID           string        `json:"owner_user_id"`
	Name                  string        `json:"name"`
	Stats                 statsResponse `json:"stats"`
	IsCritical            bool          `json:"is_critical"`
	LastStatUpdate        time.Time     `json:"last_stat_update"`
	LastInteraction       *time.Time    `json:"last_interaction,omitempty"`
	NeglectStartedAt      *time.Time    `json:"neglect_started_at,omitempty"`
	TimezoneOffsetMinutes int           `json:"timezone_offset_minutes"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

type petDetailResponse struct {
	petResponse
	Traits        traitsResponse  `json:"traits"`
	Warnings      []stats.Warning `json:"warnings"`
	InGracePeriod bool            `json:"in_grace_period"`
}

// traitsResponse incluye los rasgos tal cual y los colores listos para CSS.
type traitsResponse struct {
	traits.PetTraits
	BodyColorCSS    string  `json:"bodyColorCss"`
	BodyColorHex    string  `json:"bodyColorHex"`
	PatternColorCSS *string `json:"patternColorCss,omitempty"`
	PatternColorHex *string `json:"patternColorHex,omitempty"`
	Harmonious      bool    `json:"harmonious"`
}

type reviveResponse struct {
	Pet     petResponse `json:"pet"`
	Message string      `json:"message"`
}

// createPetHandler godoc
// @Summary Adoptar mascota
// @Description Crea una mascota para el usuario autenticado. Los rasgos visuales se generan de forma determinística a partir del ID. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Nombre (1-40) y offset horario en minutos"
// @Success 201 {object} petDetailResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:                  req.Name,
			TimezoneOffsetMinutes: req.TimezoneOffsetMinutes,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		snap, err := svc.Snapshot(r.Context(), p.ID, claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetDetailResponse(snap))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Description Lista las mascotas del usuario autenticado con los stats recalculados al momento de la consulta.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Description Devuelve la mascota con stats al día, rasgos visuales y avisos. Solo el dueño puede verla.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petDetailResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		snap, err := svc.Snapshot(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetDetailResponse(snap))
	}
}

// getTraitsHandler godoc
// @Summary Ver rasgos de la mascota
// @Description Devuelve los rasgos visuales. Si el dato guardado está corrupto o en una versión desconocida se regenera desde el ID.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} traitsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/traits [get]
func getTraitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		t, err := svc.Traits(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTraitsResponse(t))
	}
}

// careHandler godoc
// @Summary Cuidar mascota (feed / play / chat)
// @Description Aplica una acción de cuidado sobre stats al día. feed: hambre -30, felicidad +5, salud +5. play: felicidad +15, energía -10, hambre +5. chat: felicidad +5. Una mascota en estado crítico no acepta acciones (409).
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "pet is in critical state"
// @Router /pets/{petID}/feed [post]
// @Router /pets/{petID}/play [post]
// @Router /pets/{petID}/chat [post]
func careHandler(action func(ctx context.Context, petID, userID string) (Pet, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := action(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// reviveHandler godoc
// @Summary Revivir mascota
// @Description Consume una revival_potion del inventario del dueño y saca a la mascota del estado crítico. Cada revive reduce 10 puntos la salud máxima de forma permanente.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} reviveResponse
// @Failure 400 {string} string "pet is not in critical state / no recovery items available"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/revive [post]
func reviveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, res, err := svc.Revive(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reviveResponse{Pet: toPetResponse(p), Message: res.Message})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrPetCritical):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotCritical), errors.Is(err, ErrNoRecoveryItems):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Stats: statsResponse{
			Health:             p.Stats.Health,
			Hunger:             p.Stats.Hunger,
			Happiness:          p.Stats.Happiness,
			Energy:             p.Stats.Energy,
			MaxHealthPenalty:   p.MaxHealthPenalty,
			EffectiveMaxHealth: stats.EffectiveMaxHealth(p.MaxHealthPenalty),
		},
		IsCritical:            p.IsCritical,
		LastStatUpdate:        p.LastStatUpdate,
		LastInteraction:       p.LastInteraction,
		NeglectStartedAt:      p.NeglectStartedAt,
		TimezoneOffsetMinutes: p.TimezoneOffsetMinutes,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toPetDetailResponse(s Snapshot) petDetailResponse {
	return petDetailResponse{
		petResponse:   toPetResponse(s.Pet),
		Traits:        toTraitsResponse(s.Traits),
		Warnings:      s.Warnings,
		InGracePeriod: s.InGracePeriod,
	}
}

func toTraitsResponse(t traits.PetTraits) traitsResponse {
	out := traitsResponse{
		PetTraits:    t,
		BodyColorCSS: traits.HSLToString(t.BodyColor),
		BodyColorHex: traits.HSLToHex(t.BodyColor),
		Harmonious:   traits.ValidateColorHarmony(t.Colors()),
	}
	if t.PatternColor != nil {
		css := traits.HSLToString(*t.PatternColor)
		hex := traits.HSLToHex(*t.PatternColor)
		out.PatternColorCSS = &css
		out.PatternColorHex = &hex
	}
	return out
}

// writeJSON está duplicado en cada módulo de dominio para no crear un paquete compartido sólo por esto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
