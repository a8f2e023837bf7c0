package catalogo

// RGB is a plain 8-bit color for draw instructions.
type RGB struct {
	R, G, B uint8
}

// DrawInstruction is one step of a rendered document. The layout engine
// emits a flat ordered list of instructions; a Renderer consumes them in
// order. Later instructions paint over earlier ones where they overlap.
type DrawInstruction interface {
	instruction()
}

// PageBreak starts a new page. The first page is opened by the renderer, so
// a document with a single page contains no PageBreak.
type PageBreak struct{}

// DrawImage places an image file at a position. Coordinates and dimensions
// are in page units (mm).
type DrawImage struct {
	Path       string
	X, Y, W, H float64
}

// DrawRect draws a rectangle, filled or outlined.
type DrawRect struct {
	X, Y, W, H float64
	Color      RGB
	Fill       bool
}

// DrawText draws a single line of text inside a cell of width W, aligned
// per Align ("L", "C", "R"). Size is in points.
type DrawText struct {
	Text    string
	X, Y, W float64
	Size    float64
	Bold    bool
	Color   RGB
	Align   string
}

func (PageBreak) instruction() {}
func (DrawImage) instruction() {}
func (DrawRect) instruction()  {}
func (DrawText) instruction()  {}
