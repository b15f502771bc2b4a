package traits

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewHandler(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/traits/preview?seed=pet-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	if diff := cmp.Diff(GeneratePetTraits("pet-1"), got.Traits); diff != "" {
		t.Fatalf("preview traits mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, got.Harmonious)
	assert.Len(t, got.BodyColorHex, 7)
}

func TestPreviewHandler_RequiresSeed(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/traits/preview", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
