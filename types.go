package catalogo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Title position constants.
const (
	TitleTop    = "top"
	TitleCenter = "center"
	TitleBottom = "bottom"
)

// Logo position constants.
const (
	LogoLeft   = "left"
	LogoCenter = "center"
	LogoRight  = "right"
)

// Shape kind constants.
const (
	ShapeRectangle = "rectangle"
	ShapeCircle    = "circle"
)

// Logo size bounds in percent of canvas width.
const (
	MinLogoSizePercent     = 1
	MaxLogoSizePercent     = 100
	DefaultLogoSizePercent = 15
)

// ProductRow is one catalog entry. Code is the unique join key between the
// product table and the image assets.
type ProductRow struct {
	Code        string
	Description string
	Price       decimal.Decimal
}

// UploadFile is an uploaded file as received from the caller: the original
// filename plus its raw bytes.
type UploadFile struct {
	Name string
	Data []byte
}

// Report is the outcome of matching uploaded images against product codes.
type Report struct {
	Matched   []string // codes with a saved image, sorted
	Unmatched []string // filenames that matched no code, in upload order
	Missing   []string // codes without an image, sorted
	// Unvalidated is set when no code set was available and every file was
	// accepted without validation.
	Unvalidated bool
}

// Summary returns a short operator-facing description of the report.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d imagenes guardadas", len(r.Matched))
	if r.Unvalidated {
		b.WriteString(" (sin validar: tabla no cargada)")
	}
	if len(r.Unmatched) > 0 {
		fmt.Fprintf(&b, "; %d sin coincidencia: %s", len(r.Unmatched), strings.Join(r.Unmatched, ", "))
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, "; %d productos sin imagen", len(r.Missing))
	}
	return b.String()
}

// ShapeSpec describes one decorative shape on the cover. Shapes are drawn in
// list order; later shapes paint over earlier ones.
type ShapeSpec struct {
	Kind       string `yaml:"kind"`    // "rectangle", "circle"
	Color      string `yaml:"color"`   // hex, e.g. "#FF8800"
	Opacity    int    `yaml:"opacity"` // 0-255 alpha
	X          int    `yaml:"x"`
	Y          int    `yaml:"y"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	StrokeOnly bool   `yaml:"strokeOnly"`
}

// Validate checks that the shape is drawable.
func (s *ShapeSpec) Validate() error {
	if !isValidShapeKind(s.Kind) {
		return fmt.Errorf("%w: %q", ErrInvalidShapeKind, s.Kind)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d (width and height must be positive)", ErrInvalidShapeSize, s.Width, s.Height)
	}
	if s.Opacity < 0 || s.Opacity > 255 {
		return fmt.Errorf("%w: %d (must be between 0 and 255)", ErrInvalidOpacity, s.Opacity)
	}
	if _, err := parseHexColor(s.Color); err != nil {
		return err
	}
	return nil
}

// isValidShapeKind checks if kind is a known shape kind (case-insensitive).
func isValidShapeKind(kind string) bool {
	switch strings.ToLower(kind) {
	case ShapeRectangle, ShapeCircle:
		return true
	}
	return false
}

// LogoSpec configures the logo stamp on the cover.
type LogoSpec struct {
	Enabled     bool   `yaml:"enabled"`
	Position    string `yaml:"position"`    // "left", "center", "right"
	SizePercent int    `yaml:"sizePercent"` // width as percent of canvas width
}

// Validate checks logo settings. A disabled logo is always valid.
func (l *LogoSpec) Validate() error {
	if !l.Enabled {
		return nil
	}
	switch strings.ToLower(l.Position) {
	case "", LogoLeft, LogoCenter, LogoRight:
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidLogoPosition, l.Position)
	}
	if l.SizePercent < MinLogoSizePercent || l.SizePercent > MaxLogoSizePercent {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidLogoSize, l.SizePercent, MinLogoSizePercent, MaxLogoSizePercent)
	}
	return nil
}

// CoverSpec describes the cover page composite. Every field participates in
// the cache fingerprint; changing any of them forces a re-render.
type CoverSpec struct {
	Title           string      `yaml:"title"`
	FooterText      string      `yaml:"footerText"`
	BackgroundColor string      `yaml:"backgroundColor"` // hex, ignored when a background image is given
	TitleColor      string      `yaml:"titleColor"`      // hex (default white)
	FontFamily      string      `yaml:"fontFamily"`
	TitleSize       int         `yaml:"titleSize"`  // pixels on the master canvas
	FooterSize      int         `yaml:"footerSize"` // pixels on the master canvas
	TitlePosition   string      `yaml:"titlePosition"` // "top", "center", "bottom"
	Logo            LogoSpec    `yaml:"logo"`
	Shapes          []ShapeSpec `yaml:"shapes"`
}

// Validate checks that cover settings are valid.
// Returns nil if c is nil (nil means no cover page).
func (c *CoverSpec) Validate() error {
	if c == nil {
		return nil
	}
	switch strings.ToLower(c.TitlePosition) {
	case "", TitleTop, TitleCenter, TitleBottom:
	default:
		return fmt.Errorf("%w: %q (must be top, center, or bottom)", ErrInvalidTitlePosition, c.TitlePosition)
	}
	if c.BackgroundColor != "" {
		if _, err := parseHexColor(c.BackgroundColor); err != nil {
			return err
		}
	}
	if c.TitleColor != "" {
		if _, err := parseHexColor(c.TitleColor); err != nil {
			return err
		}
	}
	if err := c.Logo.Validate(); err != nil {
		return err
	}
	for i := range c.Shapes {
		if err := c.Shapes[i].Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}

// Input contains generation parameters. Exactly one of Rows or Table must be
// set; Table takes raw .xlsx bytes and is parsed before layout.
type Input struct {
	Rows      []ProductRow // Parsed product rows
	Table     []byte       // Raw .xlsx bytes (alternative to Rows)
	CoverPath string       // Rendered cover image to use as the first page (optional)
}

// Result is the outcome of a generation pass.
type Result struct {
	PDF           []byte   // The finished document
	Pages         int      // Total page count, cover included
	MissingImages []string // Codes rendered with a placeholder, sorted
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	storeDir string
	fontPath string
	currency string
}

// Defaults mirror the original deployment layout.
const (
	defaultStoreDir = "mi_catalogo"
	defaultCurrency = "$"
)

// WithStoreDir sets the asset store base directory.
// Panics if dir is empty (programmer error).
func WithStoreDir(dir string) Option {
	if dir == "" {
		panic("catalogo: WithStoreDir directory must not be empty")
	}
	return func(g *Generator) {
		g.cfg.storeDir = dir
	}
}

// WithStore injects a preconfigured asset store (e.g., rooted in a
// per-session directory).
func WithStore(store *AssetStore) Option {
	return func(g *Generator) {
		g.store = store
	}
}

// WithFontPath sets the TTF font file used for cover text. When empty or
// unloadable, a built-in basic font is used instead.
func WithFontPath(path string) Option {
	return func(g *Generator) {
		g.cfg.fontPath = path
	}
}

// WithCurrency sets the currency symbol prefixed to price tags.
func WithCurrency(symbol string) Option {
	if symbol == "" {
		panic("catalogo: WithCurrency symbol must not be empty")
	}
	return func(g *Generator) {
		g.cfg.currency = symbol
	}
}

// WithRenderer injects a rendering backend (e.g., by tests). When not set,
// each generation uses a fresh gofpdf renderer.
func WithRenderer(r Renderer) Option {
	return func(g *Generator) {
		g.renderer = r
	}
}

// sortedCopy returns a sorted copy of ss.
func sortedCopy(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}
