package catalogo

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoRows    = errors.New("product table has no rows")
	ErrParse     = errors.New("product table parse failed")
	ErrStorage   = errors.New("asset storage failed")
	ErrRender    = errors.New("document rendering failed")
	ErrNilCover  = errors.New("cover spec cannot be nil")
	ErrNoInput   = errors.New("nothing to generate: provide Rows or Table")

	// Cover spec validation errors.
	ErrInvalidShapeKind     = errors.New("invalid shape kind")
	ErrInvalidShapeSize     = errors.New("invalid shape size")
	ErrInvalidOpacity       = errors.New("invalid shape opacity")
	ErrInvalidColor         = errors.New("invalid color")
	ErrInvalidTitlePosition = errors.New("invalid title position")
	ErrInvalidLogoPosition  = errors.New("invalid logo position")
	ErrInvalidLogoSize      = errors.New("invalid logo size percent")
)
