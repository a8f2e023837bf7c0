package catalogo

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/galvez/go-catalogo/internal/xlsxutil"
)

// Generator orchestrates the catalog pipeline: asset resolution, cover
// composition, grid layout, and document rendering. Create with
// NewGenerator, then drive the stages as the caller's workflow requires.
type Generator struct {
	cfg        generatorConfig
	store      *AssetStore
	resolver   *assetResolver
	compositor *compositor
	layout     *layoutEngine
	renderer   Renderer
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithStoreDir, WithFontPath).
// Returns ErrStorage if the asset store cannot be created.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			storeDir: defaultStoreDir,
			currency: defaultCurrency,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	// Create the store if not injected (e.g., by WithStore)
	if g.store == nil {
		store, err := NewAssetStore(g.cfg.storeDir)
		if err != nil {
			return nil, err
		}
		g.store = store
	}

	g.resolver = &assetResolver{store: g.store}
	g.compositor = &compositor{store: g.store, fontPath: g.cfg.fontPath}
	g.layout = &layoutEngine{currency: g.cfg.currency}

	return g, nil
}

// Store exposes the underlying asset store.
func (g *Generator) Store() *AssetStore {
	return g.store
}

// ImportImages matches uploaded image files against the product code set and
// persists the matches. See Report for the classification outcome.
func (g *Generator) ImportImages(codes []string, files []UploadFile) (Report, error) {
	return g.resolver.Resolve(codes, files)
}

// SetLogo persists the company logo, replacing any previous one.
func (g *Generator) SetLogo(filename string, data []byte) error {
	return g.store.SaveLogo(filename, data)
}

// ComposeCover renders the cover composite and returns its stored path.
// The render is memoized: an unchanged spec with an intact cached file is
// returned without recomputation. force bypasses the cache for one call.
func (g *Generator) ComposeCover(spec *CoverSpec, background []byte, force bool) (string, error) {
	path, _, err := g.compositor.compose(spec, background, force)
	return path, err
}

// Clean removes all stored images, the logo, and the rendered cover.
func (g *Generator) Clean() error {
	return g.store.Clean()
}

// Generate runs table parsing, layout, and rendering, and returns the
// finished document. The context is checked between stages.
func (g *Generator) Generate(ctx context.Context, input Input) (Result, error) {
	rows, err := g.resolveRows(input)
	if err != nil {
		return Result{}, err
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	logoPath, _ := g.store.LogoPath()
	ins := g.layout.Layout(rows, g.store.ImagePath, input.CoverPath, logoPath)
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	renderer := g.renderer
	if renderer == nil {
		renderer = NewPDFRenderer()
	}
	if err := renderer.Render(ins); err != nil {
		return Result{}, err
	}
	pdf, err := renderer.Output()
	if err != nil {
		return Result{}, err
	}

	return Result{
		PDF:           pdf,
		Pages:         renderer.PageCount(),
		MissingImages: g.missingImages(rows),
	}, nil
}

// resolveRows returns the product rows from the input, parsing the raw
// table when needed.
func (g *Generator) resolveRows(input Input) ([]ProductRow, error) {
	switch {
	case len(input.Rows) > 0:
		return input.Rows, nil
	case len(input.Table) > 0:
		return ParseTable(input.Table)
	default:
		return nil, ErrNoInput
	}
}

// missingImages lists row codes that have no stored image, sorted.
func (g *Generator) missingImages(rows []ProductRow) []string {
	var missing []string
	for _, row := range rows {
		if _, ok := g.store.ImagePath(row.Code); !ok {
			missing = append(missing, row.Code)
		}
	}
	return sortedCopy(missing)
}

// ParseTable converts raw .xlsx bytes into product rows. The workbook's
// first sheet must carry Codigo, Descripcion, and Precio columns (case- and
// accent-insensitive). Returns ErrParse for unreadable input or a missing
// column, ErrNoRows for a table with a header but no product rows.
func ParseTable(data []byte) ([]ProductRow, error) {
	records, err := xlsxutil.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(records) == 0 {
		return nil, ErrNoRows
	}

	rows := make([]ProductRow, 0, len(records))
	for i, rec := range records {
		price, err := parsePrice(rec.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrParse, i+1, err)
		}
		rows = append(rows, ProductRow{
			Code:        rec.Code,
			Description: rec.Description,
			Price:       price,
		})
	}
	return rows, nil
}

// parsePrice parses a spreadsheet price cell. Decimal commas are accepted;
// negative prices are rejected.
func parsePrice(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if normalized == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q", s)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative price %q", s)
	}
	return price, nil
}
