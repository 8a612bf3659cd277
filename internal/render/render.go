// package render rasterizes slides into 1920x1080 PNG images
package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
)

const (
	Width  = 1920
	Height = 1080

	TitleSize = 60
	BodySize  = 40
	TitleY    = 200
	BodyY     = 400

	// ExcerptRunes is how much of the slide text is drawn before the ellipsis.
	ExcerptRunes = 50
)

var (
	GradientStart = color.RGBA{0x66, 0x7e, 0xea, 0xff}
	GradientEnd   = color.RGBA{0x76, 0x4b, 0xa2, 0xff}
)

// Renderer draws slides. It is safe for concurrent use.
type Renderer struct {
	workers int
	bold    *truetype.Font
	regular *truetype.Font
}

// NewRenderer parses the embedded Go fonts. workers bounds concurrent PNG encoding; values < 1 mean 1.
func NewRenderer(workers int) (*Renderer, error) {
	if workers < 1 {
		workers = 1
	}

	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}

	return &Renderer{workers: workers, bold: bold, regular: regular}, nil
}

// Workers returns the encoding concurrency limit.
func (r *Renderer) Workers() int { return r.workers }

// draw paints one slide: a diagonal gradient, the title, and an excerpt of the body text.
func (r *Renderer) draw(slide models.Slide) *gg.Context {
	dc := gg.NewContext(Width, Height)

	grad := gg.NewLinearGradient(0, 0, Width, Height)
	grad.AddColorStop(0, GradientStart)
	grad.AddColorStop(1, GradientEnd)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	dc.SetColor(color.White)

	if slide.Title != "" {
		dc.SetFontFace(r.face(r.bold, TitleSize))
		dc.DrawStringAnchored(slide.Title, Width/2, TitleY, 0.5, 0)
	}

	if text := slide.Text(); text != "" {
		dc.SetFontFace(r.face(r.regular, BodySize))
		dc.DrawStringAnchored(Excerpt(text), Width/2, BodyY, 0.5, 0)
	}

	return dc
}

// face returns a fresh face; truetype faces cache glyphs and must not be shared between goroutines.
func (r *Renderer) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

// Render draws and PNG-encodes every slide.
//
// Artifacts come back in slide order. Any failure discards the whole set. done, when non-nil,
// is called once per finished slide with the number of slides finished so far.
func (r *Renderer) Render(ctx context.Context, slides []models.Slide, done func(n, total int)) ([]models.Artifact, error) {
	out := make([]models.Artifact, len(slides))
	if len(slides) == 0 {
		return out, nil
	}

	var finished atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, slide := range slides {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := r.draw(slide).EncodePNG(&buf); err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}

			out[i] = models.Artifact{
				Kind: models.ArtifactSlide,
				Name: SlideName(i),
				MIME: "image/png",
				Data: buf.Bytes(),
			}

			if done != nil {
				done(int(finished.Add(1)), len(slides))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRenderFailed, err)
	}
	return out, nil
}

// SlideName returns the file name of the i-th (0-based) slide image.
func SlideName(i int) string {
	return fmt.Sprintf("slide_%02d.png", i+1)
}

// Excerpt returns the first [ExcerptRunes] characters of text followed by "...".
//
// The ellipsis is appended even when the text is shorter than the limit.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > ExcerptRunes {
		runes = runes[:ExcerptRunes]
	}
	return string(runes) + "..."
}
