package preview_probe_port

import "context"

// ImageProbePort reports whether url loads as an image. Any error means it
// does not, including ctx expiry.
type ImageProbePort interface {
	Probe(ctx context.Context, url string) error
}
