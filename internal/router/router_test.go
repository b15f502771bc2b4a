package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"virtual-pet/internal/router"
)

func TestHTTP_EndToEnd_PetLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner crea mascota
	petID, created := createPet(t, ts.URL, ownerID, map[string]any{
		"name":                    "Mochi",
		"timezone_offset_minutes": -180,
	})
	if created.Traits.BodyColorHex == "" || created.Traits.TraitVersion != 1 {
		t.Fatalf("create pet: unexpected traits %+v", created.Traits)
	}
	if created.IsCritical {
		t.Fatalf("new pet must not be critical")
	}

	// 2) Sin auth => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user, got %d", st)
		}
	}

	// 3) Otro usuario => 403
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for stranger, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/pets/"+petID+"/feed", strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 feed by stranger, got %d", st)
		}
	}

	// 4) Owner interactúa
	for _, action := range []string{"feed", "play", "chat"} {
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/"+action, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d body=%s", action, st, string(body))
		}
	}

	// 5) Traits estables entre consultas
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/traits", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 traits, got %d body=%s", st, string(body))
		}
		var tr traitsBody
		_ = json.Unmarshal(body, &tr)
		if tr.BodyColorHex != created.Traits.BodyColorHex {
			t.Fatalf("traits changed between reads: %s vs %s", tr.BodyColorHex, created.Traits.BodyColorHex)
		}
	}

	// 6) Timeline: creado + 3 interacciones, más reciente primero
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/events", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list events, got %d body=%s", st, string(body))
		}
		var evs []struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(body, &evs)
		if len(evs) != 4 {
			t.Fatalf("expected 4 events, got %d body=%s", len(evs), string(body))
		}

		st, _ = doReq(t, ts.URL, "GET", "/pets/"+petID+"/events?types=FED", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filtered events, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/pets/"+petID+"/events?types=NOTE", ownerID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown event type, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/pets/"+petID+"/events", strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 events by stranger, got %d", st)
		}
	}

	// 7) Inventario
	{
		st, body := doReq(t, ts.URL, "POST", "/me/inventory/grant", ownerID, map[string]any{"quantity": 2})
		if st != http.StatusOK {
			t.Fatalf("expected 200 grant, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/me/inventory", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 inventory, got %d body=%s", st, string(body))
		}
		var items []struct {
			ItemType string `json:"item_type"`
			Quantity int    `json:"quantity"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].Quantity != 2 {
			t.Fatalf("unexpected inventory %s", string(body))
		}
	}

	// 8) Revive sobre una mascota sana => 400, sin consumir el ítem
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/revive", ownerID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 revive healthy pet, got %d", st)
		}
		_, body := doReq(t, ts.URL, "GET", "/me/inventory", ownerID, nil)
		if !bytes.Contains(body, []byte(`"quantity":2`)) {
			t.Fatalf("revive must not consume items: %s", string(body))
		}
	}

	// 9) Listado del owner, vacío para el extraño
	{
		_, body := doReq(t, ts.URL, "GET", "/pets", ownerID, nil)
		var mine []map[string]any
		_ = json.Unmarshal(body, &mine)
		if len(mine) != 1 {
			t.Fatalf("expected 1 pet for owner, got %d", len(mine))
		}
		_, body = doReq(t, ts.URL, "GET", "/pets", strangerID, nil)
		if string(bytes.TrimSpace(body)) != "[]" {
			t.Fatalf("expected empty list for stranger, got %s", string(body))
		}
	}
}

func TestHTTP_CreatePet_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []map[string]any{
		{"name": "   "},
		{"name": "Mochi", "timezone_offset_minutes": 900},
	}
	for _, payload := range cases {
		st, _ := doReq(t, ts.URL, "POST", "/pets", "owner-1", payload)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", payload, st)
		}
	}
}

func TestHTTP_TraitsPreview_Deterministic(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	_, a := doReq(t, ts.URL, "GET", "/traits/preview?seed=abc", "", nil)
	_, b := doReq(t, ts.URL, "GET", "/traits/preview?seed=abc", "", nil)
	if !bytes.Equal(a, b) {
		t.Fatalf("preview not deterministic:\n%s\n%s", a, b)
	}

	st, _ := doReq(t, ts.URL, "GET", "/traits/preview", "", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without seed, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Swagger: true}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}
}

type traitsBody struct {
	BodyColorHex string `json:"bodyColorHex"`
	TraitVersion int    `json:"traitVersion"`
}

type petBody struct {
	ID         string     `json:"id"`
	IsCritical bool       `json:"is_critical"`
	Traits     traitsBody `json:"traits"`
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) (string, petBody) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp petBody
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID, resp
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
