package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"virtual-pet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/inventory", func(ir chi.Router) {
		ir.Get("/", listInventoryHandler(svc))
		ir.Post("/grant", grantItemHandler(svc))
	})
}

type itemResponse struct {
	ItemType  ItemType   `json:"item_type"`
	Quantity  int        `json:"quantity"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// grantItemRequest es el cuerpo para acreditar ítems al usuario autenticado.
type grantItemRequest struct {
	ItemType ItemType `json:"item_type" enums:"revival_potion"`
	Quantity int      `json:"quantity"`
}

// listInventoryHandler godoc
// @Summary Ver inventario propio
// @Description Devuelve el stock de ítems de recuperación del usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags inventory
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} itemResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me/inventory [get]
func listInventoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]itemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toItemResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// grantItemHandler godoc
// @Summary Acreditar ítems (dev)
// @Description Suma ítems al inventario del usuario autenticado. Pensado para desarrollo: la compra de ítems queda fuera de este servicio. Cantidad entre 1 y 99.
// @Tags inventory
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body grantItemRequest true "Ítem y cantidad"
// @Success 200 {object} itemResponse
// @Failure 400 {string} string "invalid json / item o cantidad inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me/inventory/grant [post]
func grantItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req grantItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.ItemType == "" {
			req.ItemType = ItemRevivalPotion
		}

		it, err := svc.Grant(r.Context(), claims.UserID, req.ItemType, req.Quantity)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "item_type must be known and quantity between 1 and 99", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func toItemResponse(it Item) itemResponse {
	out := itemResponse{ItemType: it.ItemType, Quantity: it.Quantity}
	if !it.UpdatedAt.IsZero() {
		t := it.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
