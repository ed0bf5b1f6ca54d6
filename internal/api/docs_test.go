package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ceras-workshop/storefront-gateway/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpec(t *testing.T) {
	doc, err := api.LoadSpec()

	require.NoError(t, err)
	require.NotNil(t, doc.Paths)
	for _, path := range []string{"/locations", "/payments", "/products"} {
		assert.NotNil(t, doc.Paths.Find(path), "spec should document %s", path)
	}
}

func TestRegisterDocsRoutes(t *testing.T) {
	mux := http.NewServeMux()
	require.NoError(t, api.RegisterDocsRoutes(mux))

	req := httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"openapi"`)
}
