package image_probe

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	_ "golang.org/x/image/webp"
)

// headerBytes is enough for every registered decoder to read dimensions.
const headerBytes = 64 << 10

// Prober checks that a URL serves a decodable image. It only reads the image
// header.
type Prober struct {
	httpClient *http.Client
	userAgent  string
}

func NewProber(httpClient *http.Client, userAgent string) *Prober {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Prober{httpClient: httpClient, userAgent: userAgent}
}

// Probe returns nil when url answers 2xx with a PNG, JPEG, GIF or WebP
// body. Timeouts come from ctx.
func (p *Prober) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("image probe %s: status %d", url, resp.StatusCode)
	}

	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, headerBytes))
	if err != nil {
		return fmt.Errorf("image probe %s: %w", url, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("image probe %s: empty %s image", url, format)
	}
	return nil
}
