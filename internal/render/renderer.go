// Package render turns normalized forecasts into PNG images: the colour-tiered
// table, the four-panel chart and the station infographic.
//
// Rendering is CPU bound and single threaded per call. Every call draws on its
// own canvas, so a Renderer may be shared between goroutines. Output is
// deterministic for a given input.
package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fogleman/gg"
)

var (
	// ErrRenderingUnavailable wraps every failure to produce an image.
	ErrRenderingUnavailable = errors.New("rendering unavailable")
	// ErrNothingToRender is returned when the input holds no drawable data.
	ErrNothingToRender = errors.New("nothing to render")
)

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrRenderingUnavailable, err)
}

// Renderer draws report images.
type Renderer struct {
	styles  ModelStyles
	colors  ColorMapper
	metrics Metrics
}

// NewRenderer creates a renderer with the given model styles.
func NewRenderer(styles ModelStyles) *Renderer {
	return &Renderer{
		styles:  styles,
		colors:  NewColorMapper(),
		metrics: DefaultMetrics(),
	}
}

// Styles returns the model styles of the renderer.
func (r *Renderer) Styles() ModelStyles { return r.styles }

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, unavailable(fmt.Errorf("encode png: %w", err))
	}
	return buf.Bytes(), nil
}
