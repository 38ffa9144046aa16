// Package icon rasterizes a battery percentage into a tray-sized image.
// Rendering is pure: the same percentage, charge flag and config always
// produce byte-identical PNG output.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

type Style int

const (
	StyleNumeral Style = iota
	StyleGauge
)

func (s Style) String() string {
	switch s {
	case StyleNumeral:
		return "numeral"
	case StyleGauge:
		return "gauge"
	}
	return "unknown"
}

// ParseStyle maps a config string to a Style.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "numeral":
		return StyleNumeral, nil
	case "gauge":
		return StyleGauge, nil
	}
	return 0, fmt.Errorf("unknown icon style %q (use numeral or gauge)", s)
}

type Config struct {
	Size       int // square, pixels
	Style      Style
	Foreground color.NRGBA
	Background color.NRGBA // zero value = transparent
}

const DefaultSize = 64

func DefaultConfig() Config {
	return Config{
		Size:       DefaultSize,
		Style:      StyleNumeral,
		Foreground: color.NRGBA{A: 255},
	}
}

type Renderer struct {
	cfg  Config
	font *sfnt.Font
}

func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Renderer{cfg: cfg, font: f}, nil
}

func (r *Renderer) Size() int { return r.cfg.Size }

// Clamp constrains a percentage to [0, 100]. Out-of-range input renders
// identically to the nearest bound.
func Clamp(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Render produces a PNG of cfg.Size × cfg.Size pixels depicting pct.
func (r *Renderer) Render(pct int, charging bool) ([]byte, error) {
	pct = Clamp(pct)

	img := image.NewNRGBA(image.Rect(0, 0, r.cfg.Size, r.cfg.Size))
	if r.cfg.Background.A != 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(r.cfg.Background), image.Point{}, draw.Src)
	}

	var err error
	switch r.cfg.Style {
	case StyleGauge:
		r.drawGauge(img, pct, charging)
	default:
		err = r.drawNumeral(img, pct, charging)
	}
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// label builds the numeral text: plain percentage, a trailing asterisk
// while charging, and a smiley once a charging battery passes 97%.
func label(pct int, charging bool) string {
	switch {
	case charging && pct > 97:
		return "^_^"
	case charging:
		return fmt.Sprintf("%d*", pct)
	default:
		return fmt.Sprintf("%d", pct)
	}
}

func (r *Renderer) drawNumeral(img *image.NRGBA, pct int, charging bool) error {
	text := label(pct, charging)
	face, err := r.fitFace(text)
	if err != nil {
		return err
	}
	defer face.Close()

	w := font.MeasureString(face, text)
	m := face.Metrics()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.cfg.Foreground),
		Face: face,
		Dot: fixed.Point26_6{
			X: (fixed.I(r.cfg.Size) - w) / 2,
			Y: (fixed.I(r.cfg.Size) + m.Ascent - m.Descent) / 2,
		},
	}
	d.DrawString(text)
	return nil
}

// fitFace binary-searches the point size so text fills the icon without
// clipping on either axis. Short labels ("0") are height-bound, long
// ones ("100*") width-bound.
func (r *Renderer) fitFace(text string) (font.Face, error) {
	const tolerance = 0.1
	targetW := fixed.I(r.cfg.Size - 2) // one-pixel margin each side
	targetH := fixed.I(r.cfg.Size)

	fits := func(points float64) (bool, error) {
		face, err := r.faceAt(points)
		if err != nil {
			return false, err
		}
		defer face.Close()
		w := font.MeasureString(face, text)
		m := face.Metrics()
		return w < targetW && m.Ascent+m.Descent < targetH, nil
	}

	low, high := 1.0, 200.0
	for high-low > tolerance {
		mid := (low + high) / 2
		ok, err := fits(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			low = mid
		} else {
			high = mid
		}
	}
	return r.faceAt(low)
}

func (r *Renderer) faceAt(points float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face at %.1fpt: %w", points, err)
	}
	return face, nil
}

// drawGauge fills a ring clockwise from 12 o'clock in proportion to pct.
// The unfilled remainder stays visible as a dim track so 0% is never a
// blank image.
func (r *Renderer) drawGauge(img *image.NRGBA, pct int, charging bool) {
	size := r.cfg.Size
	fg := r.cfg.Foreground
	track := color.NRGBA{R: fg.R, G: fg.G, B: fg.B, A: fg.A / 4}

	center := float64(size) / 2
	outer := center - 0.5
	inner := outer * 0.62
	sweep := 2 * math.Pi * float64(pct) / 100

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Hypot(dx, dy)
			if dist > outer+0.5 || dist < inner-0.5 {
				continue
			}

			c := track
			// Angle measured clockwise from 12 o'clock.
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			if angle < sweep {
				c = fg
			}

			// Half-pixel feather on the radial edges.
			alpha := 1.0
			if d := outer + 0.5 - dist; d < 1 {
				alpha = d
			} else if d := dist - (inner - 0.5); d < 1 {
				alpha = d
			}
			if alpha < 1 {
				c.A = uint8(float64(c.A) * alpha)
			}
			img.SetNRGBA(x, y, c)
		}
	}

	if charging {
		r.drawBolt(img, fg)
	}
}

// drawBolt puts a solid dot in the gauge center as the charging marker.
func (r *Renderer) drawBolt(img *image.NRGBA, c color.NRGBA) {
	size := r.cfg.Size
	center := float64(size) / 2
	radius := center * 0.28
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Hypot(dx, dy)
			if dist <= radius-0.5 {
				img.SetNRGBA(x, y, c)
			} else if dist <= radius+0.5 {
				img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * (radius + 0.5 - dist))})
			}
		}
	}
}

// Default returns a static fallback icon (anti-aliased filled circle)
// for when rendering fails. It cannot itself fail.
func Default(size int, c color.NRGBA) []byte {
	if size <= 0 {
		size = DefaultSize
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := center - 0.5
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Hypot(dx, dy)
			if dist <= radius-0.5 {
				img.SetNRGBA(x, y, c)
			} else if dist <= radius+0.5 {
				img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * (radius + 0.5 - dist))})
			}
		}
	}
	data, err := encodePNG(img)
	if err != nil {
		panic("icon: encode default: " + err.Error())
	}
	return data
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA". An empty string is
// transparent.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	var c color.NRGBA
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
		c.A = 255
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("bad length")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	return c, nil
}
