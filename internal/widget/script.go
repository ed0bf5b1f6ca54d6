package widget

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// SDKFactory turns the fetched script into a usable SDK. The evaluation
// strategy belongs to the embedder: a browser-backed runtime evaluates the
// script, the simulated runtime ignores the bytes entirely.
type SDKFactory func(script []byte) (SDK, error)

// ScriptLoader fetches the payments script from its pinned CDN URL. The
// manager guarantees at-most-once loading; the loader itself is stateless.
type ScriptLoader struct {
	url        string
	httpClient *http.Client
	factory    SDKFactory
}

func NewScriptLoader(url string, httpClient *http.Client, factory SDKFactory) *ScriptLoader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ScriptLoader{
		url:        url,
		httpClient: httpClient,
		factory:    factory,
	}
}

func (l *ScriptLoader) Load(ctx context.Context) (SDK, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building script request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching payments script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payments script fetch returned status %d", resp.StatusCode)
	}

	script, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading payments script: %w", err)
	}

	return l.factory(script)
}
