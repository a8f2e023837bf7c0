package catalogo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Field and record separators for the stable fingerprint serialization.
// Control characters cannot occur in spec values, so concatenation stays
// unambiguous.
const (
	fpFieldSep  = "\x1f"
	fpRecordSep = "\x1e"
)

// coverFingerprint returns a deterministic digest over every CoverSpec field
// plus the presence of a background image and a stored logo. Two specs with
// the same fingerprint render identical covers, so the digest doubles as the
// memoization key.
func coverFingerprint(spec *CoverSpec, hasBackground, hasLogo bool) string {
	h := sha256.New()
	writeField(h, spec.Title)
	writeField(h, spec.FooterText)
	writeField(h, spec.BackgroundColor)
	writeField(h, spec.TitleColor)
	writeField(h, spec.FontFamily)
	writeField(h, spec.TitleSize)
	writeField(h, spec.FooterSize)
	writeField(h, spec.TitlePosition)
	writeField(h, spec.Logo.Enabled)
	writeField(h, spec.Logo.Position)
	writeField(h, spec.Logo.SizePercent)
	writeField(h, hasBackground)
	writeField(h, hasLogo)
	for _, s := range spec.Shapes {
		io.WriteString(h, fpRecordSep)
		writeField(h, s.Kind)
		writeField(h, s.Color)
		writeField(h, s.Opacity)
		writeField(h, s.X)
		writeField(h, s.Y)
		writeField(h, s.Width)
		writeField(h, s.Height)
		writeField(h, s.StrokeOnly)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeField writes one value followed by the field separator.
func writeField(w io.Writer, v any) {
	fmt.Fprintf(w, "%v%s", v, fpFieldSep)
}
