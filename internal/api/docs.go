// Package api serves the embedded OpenAPI description of the gateway's
// REST surface.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.json
var openAPISpec []byte

// LoadSpec parses and validates the embedded document. Called at startup so
// a malformed spec fails the boot instead of the first /docs request.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("parsing openapi spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validating openapi spec: %w", err)
	}
	return doc, nil
}

// RegisterDocsRoutes validates the embedded spec and mounts it on the mux.
func RegisterDocsRoutes(mux *http.ServeMux) error {
	if _, err := LoadSpec(); err != nil {
		return err
	}

	mux.HandleFunc("GET /docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(openAPISpec)
	})

	return nil
}
