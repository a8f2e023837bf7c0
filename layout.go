package catalogo

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Page dimensions: A4 landscape, in mm.
const (
	pageWidth  = 297.0
	pageHeight = 210.0
)

// Grid geometry. Four columns by three row slots, twelve cards per page.
const (
	gridColumns  = 4
	gridRowSlots = 3
	itemsPerPage = gridColumns * gridRowSlots

	gridStartX   = 12.0
	gridStartY   = 30.0
	gridSpacingX = 70.0
	gridSpacingY = 58.0

	cardWidth   = 65.0
	cardImageW  = 40.0
	cardImageH  = 35.0
	priceBadgeW = 26.0
	priceBadgeH = 8.0
)

// rowSlotOffsets are per-slot vertical corrections in mm, tuned to visually
// balance the three stacked rows within a page. Layout parity with existing
// catalogs depends on these exact values.
var rowSlotOffsets = [gridRowSlots]float64{5, -10, -20}

// Description constraints: uppercased, truncated, wrapped, capped.
const (
	descMaxChars    = 85
	descLineChars   = 28
	descMaxLines    = 2
	descEllipsis    = "..."
	missingImageMsg = "Imagen no encontrada"
	headerText      = "OFERTA"
)

// Card text sizes, in points.
const (
	headerTextSize = 24.0
	codeTextSize   = 10.0
	priceTextSize  = 10.0
	descTextSize   = 7.0
	missingMsgSize = 7.0
)

// Card palette.
var (
	colorBadge       = RGB{R: 200, G: 30, B: 45}
	colorWhite       = RGB{R: 255, G: 255, B: 255}
	colorText        = RGB{R: 33, G: 33, B: 33}
	colorPlaceholder = RGB{R: 160, G: 160, B: 160}
	colorHeader      = RGB{R: 200, G: 30, B: 45}
)

// layoutEngine maps product rows to draw instructions. It is a pure function
// of its inputs: no storage access beyond the injected path lookup.
type layoutEngine struct {
	currency string
}

// Layout produces the ordered instruction list for the whole document.
// imagePath resolves a product code to an existing asset path; coverPath and
// logoPath are optional ("" disables the cover page / logo stamp).
func (e *layoutEngine) Layout(rows []ProductRow, imagePath func(code string) (string, bool), coverPath, logoPath string) []DrawInstruction {
	var ins []DrawInstruction

	if coverPath != "" {
		ins = append(ins, DrawImage{Path: coverPath, X: 0, Y: 0, W: pageWidth, H: pageHeight})
		ins = append(ins, PageBreak{})
	}

	for i, row := range rows {
		if i%itemsPerPage == 0 {
			if i > 0 {
				ins = append(ins, PageBreak{})
			}
			ins = append(ins, pageHeader(logoPath)...)
		}
		ins = append(ins, e.card(row, i, imagePath)...)
	}

	return ins
}

// pageHeader emits the running header band and the optional logo stamp,
// once per product page.
func pageHeader(logoPath string) []DrawInstruction {
	ins := []DrawInstruction{
		DrawText{Text: headerText, X: gridStartX, Y: 8, W: 80, Size: headerTextSize, Bold: true, Color: colorHeader, Align: "L"},
		DrawText{Text: headerText, X: pageWidth - gridStartX - 80, Y: 8, W: 80, Size: headerTextSize, Bold: true, Color: colorHeader, Align: "R"},
	}
	if logoPath != "" {
		ins = append(ins, DrawImage{Path: logoPath, X: pageWidth - 34, Y: pageHeight - 20, W: 22, H: 14})
	}
	return ins
}

// card emits the instructions for one product card at grid index i.
func (e *layoutEngine) card(row ProductRow, i int, imagePath func(code string) (string, bool)) []DrawInstruction {
	column := i % gridColumns
	rowSlot := (i / gridColumns) % gridRowSlots

	x := gridStartX + float64(column)*gridSpacingX
	y := gridStartY + float64(rowSlot)*gridSpacingY
	y += rowSlotOffsets[rowSlot]

	var ins []DrawInstruction

	// Product image, or placeholder block when no asset matches the code.
	imgX := x + (cardWidth-cardImageW)/2
	if path, ok := imagePath(row.Code); ok {
		ins = append(ins, DrawImage{Path: path, X: imgX, Y: y, W: cardImageW, H: cardImageH})
	} else {
		ins = append(ins,
			DrawRect{X: imgX, Y: y, W: cardImageW, H: cardImageH, Color: colorPlaceholder},
			DrawText{Text: missingImageMsg, X: x, Y: y + cardImageH/2 - 2, W: cardWidth, Size: missingMsgSize, Color: colorPlaceholder, Align: "C"},
		)
	}

	// Price tag: filled badge with white text.
	badgeX := x + (cardWidth-priceBadgeW)/2
	badgeY := y + cardImageH + 2
	ins = append(ins,
		DrawRect{X: badgeX, Y: badgeY, W: priceBadgeW, H: priceBadgeH, Color: colorBadge, Fill: true},
		DrawText{Text: formatPrice(row.Price, e.currency), X: badgeX, Y: badgeY + 2, W: priceBadgeW, Size: priceTextSize, Bold: true, Color: colorWhite, Align: "C"},
	)

	// Code, bold and centered.
	ins = append(ins, DrawText{Text: row.Code, X: x, Y: badgeY + priceBadgeH + 2, W: cardWidth, Size: codeTextSize, Bold: true, Color: colorText, Align: "C"})

	// Description: uppercased, truncated, wrapped, capped at two lines.
	lineY := badgeY + priceBadgeH + 7
	for _, line := range descriptionLines(row.Description) {
		ins = append(ins, DrawText{Text: line, X: x, Y: lineY, W: cardWidth, Size: descTextSize, Color: colorText, Align: "C"})
		lineY += 3.5
	}

	return ins
}

// formatPrice renders a price with the currency symbol and two decimals.
func formatPrice(p decimal.Decimal, currency string) string {
	return currency + p.StringFixed(2)
}

// descriptionLines normalizes a description for the card: uppercase,
// truncate to descMaxChars with an ellipsis, word-wrap, and keep at most
// descMaxLines lines. Anything beyond the cap is dropped; the card has no
// room for it.
func descriptionLines(desc string) []string {
	text := strings.ToUpper(strings.TrimSpace(desc))
	if text == "" {
		return nil
	}
	if runes := []rune(text); len(runes) > descMaxChars {
		text = string(runes[:descMaxChars]) + descEllipsis
	}
	lines := wrapWords(text, descLineChars)
	if len(lines) > descMaxLines {
		lines = lines[:descMaxLines]
	}
	return lines
}

// wrapWords greedily wraps text into lines of at most limit runes. A single
// word longer than the limit gets its own line rather than being split.
func wrapWords(text string, limit int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= limit:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
