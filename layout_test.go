package catalogo

// Notes:
// - Layout: page-break count, grid periodicity, per-slot vertical offsets
// - Cards: placeholder emission, price badge, description normalization
// - Pure function: identical inputs produce identical instruction lists

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// makeRows builds n rows with synthetic codes P000..P(n-1).
func makeRows(n int) []ProductRow {
	rows := make([]ProductRow, n)
	for i := range rows {
		rows[i] = ProductRow{
			Code:        fmt.Sprintf("P%03d", i),
			Description: fmt.Sprintf("Producto %d", i),
			Price:       decimal.NewFromInt(int64(i + 1)),
		}
	}
	return rows
}

// noImages resolves no code to an asset.
func noImages(string) (string, bool) { return "", false }

// countBreaks counts PageBreak instructions.
func countBreaks(ins []DrawInstruction) int {
	n := 0
	for _, in := range ins {
		if _, ok := in.(PageBreak); ok {
			n++
		}
	}
	return n
}

// textsIn collects every DrawText payload.
func textsIn(ins []DrawInstruction) []string {
	var texts []string
	for _, in := range ins {
		if t, ok := in.(DrawText); ok {
			texts = append(texts, t.Text)
		}
	}
	return texts
}

// ---------------------------------------------------------------------------
// TestLayout_PageBreaks - pagination
// ---------------------------------------------------------------------------

func TestLayout_PageBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows       int
		coverPath  string
		wantBreaks int
	}{
		{name: "single row", rows: 1, wantBreaks: 0},
		{name: "full page", rows: 12, wantBreaks: 0},
		{name: "one over a page", rows: 13, wantBreaks: 1},
		{name: "two full pages", rows: 24, wantBreaks: 1},
		{name: "three pages", rows: 25, wantBreaks: 2},
		{name: "cover adds one break", rows: 12, coverPath: "portada.png", wantBreaks: 1},
		{name: "cover plus page break", rows: 13, coverPath: "portada.png", wantBreaks: 2},
	}

	engine := &layoutEngine{currency: "$"}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ins := engine.Layout(makeRows(tt.rows), noImages, tt.coverPath, "")
			if got := countBreaks(ins); got != tt.wantBreaks {
				t.Errorf("countBreaks() = %d, want %d", got, tt.wantBreaks)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLayout_GridPeriodicity - column/rowSlot repeat every 12 items
// ---------------------------------------------------------------------------

func TestLayout_GridPeriodicity(t *testing.T) {
	t.Parallel()

	for i := 0; i < 36; i++ {
		column := i % gridColumns
		rowSlot := (i / gridColumns) % gridRowSlots
		if column != (i+itemsPerPage)%gridColumns {
			t.Errorf("column(%d) != column(%d)", i, i+itemsPerPage)
		}
		if rowSlot != ((i+itemsPerPage)/gridColumns)%gridRowSlots {
			t.Errorf("rowSlot(%d) != rowSlot(%d)", i, i+itemsPerPage)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLayout_RowSlotOffsets - vertical corrections per slot
// ---------------------------------------------------------------------------

func TestLayout_RowSlotOffsets(t *testing.T) {
	t.Parallel()

	want := [gridRowSlots]float64{5, -10, -20}
	if rowSlotOffsets != want {
		t.Errorf("rowSlotOffsets = %v, want %v", rowSlotOffsets, want)
	}
}

func TestLayout_CardPositions(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}

	// Rows 0, 4, and 8 occupy column 0 of slots 0, 1, 2.
	ins := engine.Layout(makeRows(12), noImages, "", "")

	var rects []DrawRect
	for _, in := range ins {
		if r, ok := in.(DrawRect); ok && !r.Fill {
			rects = append(rects, r) // placeholder rects, one per card
		}
	}
	if len(rects) != 12 {
		t.Fatalf("placeholder rects = %d, want 12", len(rects))
	}

	wantY := []float64{
		gridStartY + 5,                   // slot 0
		gridStartY + gridSpacingY - 10,   // slot 1
		gridStartY + 2*gridSpacingY - 20, // slot 2
	}
	for slot := 0; slot < gridRowSlots; slot++ {
		got := rects[slot*gridColumns].Y
		if got != wantY[slot] {
			t.Errorf("slot %d placeholder Y = %v, want %v", slot, got, wantY[slot])
		}
	}

	// Row 13 (index 12) restarts at the same coordinates as row 0.
	ins13 := engine.Layout(makeRows(13), noImages, "", "")
	var rects13 []DrawRect
	for _, in := range ins13 {
		if r, ok := in.(DrawRect); ok && !r.Fill {
			rects13 = append(rects13, r)
		}
	}
	first, last := rects13[0], rects13[12]
	if first.X != last.X || first.Y != last.Y {
		t.Errorf("row 12 position = (%v,%v), want same as row 0 (%v,%v)", last.X, last.Y, first.X, first.Y)
	}
}

// ---------------------------------------------------------------------------
// TestLayout_Cards - per-card instruction content
// ---------------------------------------------------------------------------

func TestLayout_PlaceholderForMissingImage(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}
	ins := engine.Layout(makeRows(1), noImages, "", "")

	found := false
	for _, text := range textsIn(ins) {
		if text == "Imagen no encontrada" {
			found = true
		}
	}
	if !found {
		t.Error("expected placeholder label for missing image")
	}
}

func TestLayout_ImageInsteadOfPlaceholder(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}
	withImage := func(code string) (string, bool) { return "imagenes/" + code + ".jpg", true }
	ins := engine.Layout(makeRows(1), withImage, "", "")

	var images []DrawImage
	for _, in := range ins {
		if img, ok := in.(DrawImage); ok {
			images = append(images, img)
		}
	}
	if len(images) != 1 {
		t.Fatalf("DrawImage count = %d, want 1", len(images))
	}
	if images[0].Path != "imagenes/P000.jpg" {
		t.Errorf("image path = %q, want %q", images[0].Path, "imagenes/P000.jpg")
	}
	for _, text := range textsIn(ins) {
		if text == "Imagen no encontrada" {
			t.Error("placeholder label emitted despite resolved image")
		}
	}
}

func TestLayout_PriceTag(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}
	rows := []ProductRow{{Code: "A1", Description: "x", Price: decimal.RequireFromString("12.5")}}
	ins := engine.Layout(rows, noImages, "", "")

	var badge *DrawRect
	for _, in := range ins {
		if r, ok := in.(DrawRect); ok && r.Fill {
			badge = &r
			break
		}
	}
	if badge == nil {
		t.Fatal("no filled badge rect emitted")
	}
	if badge.Color != colorBadge {
		t.Errorf("badge color = %v, want %v", badge.Color, colorBadge)
	}

	foundPrice := false
	for _, in := range ins {
		if txt, ok := in.(DrawText); ok && txt.Text == "$12.50" {
			foundPrice = true
			if txt.Color != colorWhite {
				t.Errorf("price text color = %v, want white", txt.Color)
			}
		}
	}
	if !foundPrice {
		t.Error("price text $12.50 not emitted")
	}
}

func TestLayout_HeaderPerPage(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}
	ins := engine.Layout(makeRows(13), noImages, "", "")

	headers := 0
	for _, text := range textsIn(ins) {
		if text == "OFERTA" {
			headers++
		}
	}
	// Two pages, duplicated left/right on each.
	if headers != 4 {
		t.Errorf("OFERTA count = %d, want 4", headers)
	}
}

func TestLayout_LogoStamp(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}
	ins := engine.Layout(makeRows(13), noImages, "", "logo.png")

	stamps := 0
	for _, in := range ins {
		if img, ok := in.(DrawImage); ok && img.Path == "logo.png" {
			stamps++
		}
	}
	if stamps != 2 {
		t.Errorf("logo stamps = %d, want one per page (2)", stamps)
	}
}

func TestLayout_CoverPageFirst(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}
	ins := engine.Layout(makeRows(1), noImages, "portada.png", "")

	cover, ok := ins[0].(DrawImage)
	if !ok {
		t.Fatalf("first instruction = %T, want DrawImage", ins[0])
	}
	if cover.W != pageWidth || cover.H != pageHeight {
		t.Errorf("cover dims = %vx%v, want full bleed %vx%v", cover.W, cover.H, pageWidth, pageHeight)
	}
	if _, ok := ins[1].(PageBreak); !ok {
		t.Errorf("second instruction = %T, want PageBreak", ins[1])
	}
}

// ---------------------------------------------------------------------------
// TestDescriptionLines - normalization, truncation, wrapping, line cap
// ---------------------------------------------------------------------------

func TestDescriptionLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		desc      string
		wantLines []string
	}{
		{
			name:      "empty",
			desc:      "",
			wantLines: nil,
		},
		{
			name:      "short is uppercased only",
			desc:      "Collar para perro",
			wantLines: []string{"COLLAR PARA PERRO"},
		},
		{
			name:      "wraps at word boundaries",
			desc:      "collar ajustable de cuero para perros medianos",
			wantLines: []string{"COLLAR AJUSTABLE DE CUERO", "PARA PERROS MEDIANOS"},
		},
		{
			name: "long input truncated then capped at two lines",
			desc: strings.Repeat("palabra ", 30), // 240 chars
			wantLines: []string{
				"PALABRA PALABRA PALABRA",
				"PALABRA PALABRA PALABRA",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := descriptionLines(tt.desc)
			if len(got) != len(tt.wantLines) {
				t.Fatalf("descriptionLines() = %q, want %q", got, tt.wantLines)
			}
			for i := range got {
				if got[i] != tt.wantLines[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.wantLines[i])
				}
			}
		})
	}
}

func TestDescriptionLines_TruncationBoundary(t *testing.T) {
	t.Parallel()

	// Exactly 85 chars: unmodified aside from case, no ellipsis.
	at := strings.Repeat("a", descMaxChars)
	joined := strings.Join(descriptionLines(at), " ")
	if strings.Contains(joined, descEllipsis) {
		t.Errorf("85-char description gained an ellipsis: %q", joined)
	}

	// 86 chars: truncated to 85 plus ellipsis before wrapping.
	over := strings.Repeat("a", descMaxChars+1)
	lines := descriptionLines(over)
	joined = strings.Join(lines, "")
	if !strings.Contains(joined, descEllipsis) {
		t.Errorf("86-char description missing ellipsis: %q", joined)
	}
	if len(lines) > descMaxLines {
		t.Errorf("lines = %d, want at most %d", len(lines), descMaxLines)
	}
}

func TestWrapWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{name: "fits on one line", text: "UNO DOS", limit: 10, want: []string{"UNO DOS"}},
		{name: "splits at limit", text: "UNO DOS TRES", limit: 7, want: []string{"UNO DOS", "TRES"}},
		{name: "oversized word gets own line", text: "SUPERCALIFRAGILISTICO X", limit: 5, want: []string{"SUPERCALIFRAGILISTICO", "X"}},
		{name: "empty", text: "", limit: 10, want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := wrapWords(tt.text, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapWords() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFormatPrice
// ---------------------------------------------------------------------------

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    string
		currency string
		want     string
	}{
		{name: "integer", price: "5", currency: "$", want: "$5.00"},
		{name: "two decimals", price: "12.5", currency: "$", want: "$12.50"},
		{name: "rounds to cents", price: "9.999", currency: "$", want: "$10.00"},
		{name: "other currency", price: "3", currency: "€", want: "€3.00"},
		{name: "zero", price: "0", currency: "$", want: "$0.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := decimal.RequireFromString(tt.price)
			if got := formatPrice(p, tt.currency); got != tt.want {
				t.Errorf("formatPrice() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLayout_Deterministic - pure function of its inputs
// ---------------------------------------------------------------------------

func TestLayout_Deterministic(t *testing.T) {
	t.Parallel()

	engine := &layoutEngine{currency: "$"}
	rows := makeRows(25)
	a := engine.Layout(rows, noImages, "portada.png", "logo.png")
	b := engine.Layout(rows, noImages, "portada.png", "logo.png")

	if len(a) != len(b) {
		t.Fatalf("instruction counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("instruction %d differs: %#v vs %#v", i, a[i], b[i])
		}
	}
}
