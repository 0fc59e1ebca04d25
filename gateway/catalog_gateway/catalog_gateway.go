package catalog_gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"plugin-browser/domain"
	"plugin-browser/port/catalog_port"
)

// CatalogGateway implements FetchCatalogPort on top of the raw API driver.
type CatalogGateway struct {
	api catalog_port.CatalogAPIPort
}

func NewCatalogGateway(api catalog_port.CatalogAPIPort) *CatalogGateway {
	return &CatalogGateway{api: api}
}

type envelope struct {
	Plugins json.RawMessage `json:"plugins"`
	Info    json.RawMessage `json:"info"`
}

func (g *CatalogGateway) FetchCatalog(ctx context.Context, q domain.Query) (*domain.RawCatalogPayload, error) {
	body, err := g.api.QueryPlugins(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamMalformed) || errors.Is(err, domain.ErrUpstreamUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	return DecodeEnvelope(body)
}

// DecodeEnvelope checks that body is a JSON object with a top-level plugins
// array and splits that array into its raw elements.
func DecodeEnvelope(body []byte) (*domain.RawCatalogPayload, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
	}

	plugins := bytes.TrimSpace(env.Plugins)
	if len(plugins) == 0 || plugins[0] != '[' {
		return nil, fmt.Errorf("%w: missing plugins array", domain.ErrUpstreamMalformed)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(plugins, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
	}

	payload := &domain.RawCatalogPayload{
		Plugins: make([][]byte, 0, len(items)),
		Info:    []byte(env.Info),
	}
	for _, item := range items {
		payload.Plugins = append(payload.Plugins, []byte(item))
	}
	return payload, nil
}
