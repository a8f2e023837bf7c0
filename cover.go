package catalogo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/galvez/go-catalogo/internal/fileutil"
)

// Master canvas dimensions: A4 landscape at 300 DPI. The cover is rendered
// once at this size and scaled down when placed in the document.
const (
	coverWidth  = 3508
	coverHeight = 2480
)

// Fixed vertical anchors on the master canvas, in pixels.
const (
	titleTopY    = 400
	titleCenterY = 900
	titleBottomY = 1500

	footerBottomOffset = 180
	logoTopOffset      = 100
)

// shapeStrokeWidth is the stroke width for stroke-only shapes, in pixels.
const shapeStrokeWidth = 4

// Text size defaults on the master canvas, in pixels.
const (
	defaultTitleSize  = 160
	defaultFooterSize = 64
)

// fontSearchDirs are scanned for <family>.ttf when loading the cover font.
var fontSearchDirs = []string{
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/truetype/liberation",
	"/usr/share/fonts/TTF",
	"/Library/Fonts",
	"C:\\Windows\\Fonts",
}

// compositor builds the flattened cover raster and memoizes it by content
// fingerprint. Not safe for concurrent use; the generator serializes access.
type compositor struct {
	store    *AssetStore
	fontPath string

	lastFingerprint string
}

// compose renders the cover described by spec and persists it at the store's
// cover path. The rendered return reports whether a render actually ran:
// when the fingerprint matches the previous call and the cached file still
// exists, the cached path is returned untouched. force bypasses the
// fingerprint check for this call only.
func (c *compositor) compose(spec *CoverSpec, background []byte, force bool) (path string, rendered bool, err error) {
	if spec == nil {
		return "", false, ErrNilCover
	}
	if err := spec.Validate(); err != nil {
		return "", false, err
	}

	_, hasLogo := c.store.LogoPath()
	fp := coverFingerprint(spec, len(background) > 0, spec.Logo.Enabled && hasLogo)
	cachePath := c.store.CoverPath()
	if !force && fp == c.lastFingerprint && fileutil.FileExists(cachePath) {
		return cachePath, false, nil
	}

	base := c.composeBase(spec, background)
	if len(spec.Shapes) > 0 {
		overlay := image.NewNRGBA(image.Rect(0, 0, coverWidth, coverHeight))
		for i := range spec.Shapes {
			drawShape(overlay, &spec.Shapes[i])
		}
		base = imaging.Overlay(base, overlay, image.Pt(0, 0), 1.0)
	}
	c.drawCoverText(base, spec)
	if spec.Logo.Enabled && hasLogo {
		base = c.overlayLogo(base, &spec.Logo)
	}

	if err := imaging.Save(base, cachePath); err != nil {
		return "", false, fmt.Errorf("%w: saving cover: %v", ErrStorage, err)
	}
	c.lastFingerprint = fp
	return cachePath, true, nil
}

// composeBase returns the canvas-sized base layer: the background image
// stretched to the canvas, or a solid fill when no image is given or the
// image is undecodable.
func (c *compositor) composeBase(spec *CoverSpec, background []byte) *image.NRGBA {
	fill := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if spec.BackgroundColor != "" {
		if parsed, err := parseHexColor(spec.BackgroundColor); err == nil {
			fill = parsed
		}
	}
	if len(background) > 0 {
		img, err := imaging.Decode(bytes.NewReader(background))
		if err == nil {
			resized := imaging.Resize(img, coverWidth, coverHeight, imaging.Lanczos)
			return imaging.Paste(imaging.New(coverWidth, coverHeight, fill), resized, image.Pt(0, 0))
		}
	}
	return imaging.New(coverWidth, coverHeight, fill)
}

// drawCoverText draws the title and footer, horizontally centered. The title
// baseline is selected by TitlePosition; the footer sits near the bottom.
func (c *compositor) drawCoverText(dst *image.NRGBA, spec *CoverSpec) {
	textColor := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if spec.TitleColor != "" {
		if parsed, err := parseHexColor(spec.TitleColor); err == nil {
			textColor = parsed
		}
	}

	if spec.Title != "" {
		size := spec.TitleSize
		if size <= 0 {
			size = defaultTitleSize
		}
		face := c.loadFace(spec.FontFamily, float64(size))
		drawCenteredString(dst, face, spec.Title, titleBaseline(spec.TitlePosition), textColor)
	}

	if spec.FooterText != "" {
		size := spec.FooterSize
		if size <= 0 {
			size = defaultFooterSize
		}
		face := c.loadFace(spec.FontFamily, float64(size))
		drawCenteredString(dst, face, spec.FooterText, coverHeight-footerBottomOffset, textColor)
	}
}

// titleBaseline maps a title position to its fixed pixel anchor.
func titleBaseline(position string) int {
	switch strings.ToLower(position) {
	case TitleCenter:
		return titleCenterY
	case TitleBottom:
		return titleBottomY
	default:
		return titleTopY
	}
}

// overlayLogo scales the stored logo to the requested percent of the canvas
// width (aspect preserved) and alpha-composites it near the top edge.
func (c *compositor) overlayLogo(dst *image.NRGBA, spec *LogoSpec) *image.NRGBA {
	path, ok := c.store.LogoPath()
	if !ok {
		return dst
	}
	logo, err := imaging.Open(path)
	if err != nil {
		return dst
	}
	percent := spec.SizePercent
	if percent <= 0 {
		percent = DefaultLogoSizePercent
	}
	width := coverWidth * percent / 100
	scaled := imaging.Resize(logo, width, 0, imaging.Lanczos)

	var x int
	switch strings.ToLower(spec.Position) {
	case LogoCenter:
		x = (coverWidth - scaled.Bounds().Dx()) / 2
	case LogoRight:
		x = coverWidth - scaled.Bounds().Dx()
	default:
		x = 0
	}
	return imaging.Overlay(dst, scaled, image.Pt(x, logoTopOffset), 1.0)
}

// loadFace loads the requested font family at the given pixel size, falling
// back to a basic built-in face when no TTF can be loaded.
func (c *compositor) loadFace(family string, sizePx float64) font.Face {
	for _, path := range candidateFontPaths(c.fontPath, family) {
		data, err := os.ReadFile(path) // #nosec G304 -- font path is caller-configured
		if err != nil {
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    sizePx,
			DPI:     72, // at 72 DPI, point size equals pixel size
			Hinting: font.HintingFull,
		})
		if err != nil {
			continue
		}
		return face
	}
	return basicfont.Face7x13
}

// candidateFontPaths lists font files to try, most specific first.
func candidateFontPaths(explicit, family string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if family != "" {
		for _, dir := range fontSearchDirs {
			paths = append(paths, dir+string(os.PathSeparator)+family+".ttf")
		}
	}
	for _, dir := range fontSearchDirs {
		paths = append(paths, dir+string(os.PathSeparator)+"DejaVuSans.ttf")
	}
	return paths
}

// drawCenteredString draws s horizontally centered at the given baseline.
func drawCenteredString(dst draw.Image, face font.Face, s string, baseline int, col color.NRGBA) {
	width := font.MeasureString(face, s).Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P((coverWidth-width)/2, baseline),
	}
	d.DrawString(s)
}

// drawShape paints one shape onto the transparent overlay. List order is
// z-order: the overlay is built back to front with plain Over compositing.
func drawShape(overlay *image.NRGBA, s *ShapeSpec) {
	col, err := parseHexColor(s.Color)
	if err != nil {
		return
	}
	col.A = uint8(s.Opacity)
	rect := image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)

	switch strings.ToLower(s.Kind) {
	case ShapeCircle:
		if s.StrokeOnly {
			strokeEllipse(overlay, rect, col)
		} else {
			fillEllipse(overlay, rect, col)
		}
	default: // rectangle
		if s.StrokeOnly {
			strokeRect(overlay, rect, col)
		} else {
			draw.Draw(overlay, rect, image.NewUniform(col), image.Point{}, draw.Over)
		}
	}
}

// strokeRect draws a rectangle outline as four bars of shapeStrokeWidth.
func strokeRect(dst *image.NRGBA, r image.Rectangle, col color.NRGBA) {
	src := image.NewUniform(col)
	w := shapeStrokeWidth
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w), src, image.Point{}, draw.Over)
}

// fillEllipse fills the ellipse inscribed in r by scanning rows and solving
// the ellipse equation for the horizontal extent of each.
func fillEllipse(dst *image.NRGBA, r image.Rectangle, col color.NRGBA) {
	src := image.NewUniform(col)
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		x0 := int(math.Ceil(cx - half))
		x1 := int(math.Floor(cx + half))
		draw.Draw(dst, image.Rect(x0, y, x1, y+1), src, image.Point{}, draw.Over)
	}
}

// strokeEllipse draws an ellipse outline by filling the outer ellipse rows
// and skipping the interior of an ellipse inset by the stroke width.
func strokeEllipse(dst *image.NRGBA, r image.Rectangle, col color.NRGBA) {
	src := image.NewUniform(col)
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	irx := rx - shapeStrokeWidth
	iry := ry - shapeStrokeWidth
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		fy := float64(y) + 0.5 - cy
		dy := fy / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		x0 := int(math.Ceil(cx - half))
		x1 := int(math.Floor(cx + half))
		if irx <= 0 || iry <= 0 || fy*fy/(iry*iry) >= 1 {
			// Row entirely within the stroke band.
			draw.Draw(dst, image.Rect(x0, y, x1, y+1), src, image.Point{}, draw.Over)
			continue
		}
		innerHalf := irx * math.Sqrt(1-fy*fy/(iry*iry))
		ix0 := int(math.Ceil(cx - innerHalf))
		ix1 := int(math.Floor(cx + innerHalf))
		draw.Draw(dst, image.Rect(x0, y, ix0, y+1), src, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(ix1, y, x1, y+1), src, image.Point{}, draw.Over)
	}
}

// parseHexColor parses "#RGB" or "#RRGGBB" into an opaque NRGBA.
func parseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 255}
	if s == "" || s[0] != '#' {
		return c, fmt.Errorf("%w: %q (expected #RGB or #RRGGBB)", ErrInvalidColor, s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	case 6:
	default:
		return c, fmt.Errorf("%w: %q (expected #RGB or #RRGGBB)", ErrInvalidColor, s)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(hex[2*i])
		lo, ok2 := hexDigit(hex[2*i+1])
		if !ok1 || !ok2 {
			return c, fmt.Errorf("%w: %q (non-hex digit)", ErrInvalidColor, s)
		}
		rgb[i] = hi<<4 | lo
	}
	c.R, c.G, c.B = rgb[0], rgb[1], rgb[2]
	return c, nil
}

// hexDigit decodes one hex digit.
func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
