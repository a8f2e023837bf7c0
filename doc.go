// Package catalogo turns a tabular product list and a set of product images
// into a paginated, print-ready PDF catalog of price-tag cards.
//
// # Quick Start
//
// Create a generator, import assets, and generate:
//
//	gen, err := catalogo.NewGenerator(catalogo.WithStoreDir("mi_catalogo"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := gen.ImportImages(codes, files)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, catalogo.Input{Table: xlsxBytes})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("catalogo.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes, the page count, and the list of product
// codes that rendered with a placeholder because no image was found.
//
// # Generation Pipeline
//
// Generation follows these stages:
//
//  1. Table parsing (Codigo, Descripcion, Precio columns from .xlsx)
//  2. Asset resolution (uploaded image filenames matched against codes)
//  3. Cover composition (layered raster, memoized by content fingerprint)
//  4. Grid layout (4x3 cards per page, emitted as draw instructions)
//  5. PDF rendering (landscape A4 via gofpdf)
//
// # Asset Resolution
//
// Uploaded images are matched to product codes by their base filename with
// the extension stripped. Matched files are persisted in the asset store as
// <code>.jpg; unmatched files and codes without an image are reported, not
// treated as errors:
//
//	report, err := gen.ImportImages([]string{"A001", "A002"}, files)
//	fmt.Println(report.Summary())
//
// # Cover Composition
//
// An optional cover page is composed from a background (image or solid
// color), an ordered list of decorative shapes, title and footer text, and
// an optional logo. The composite is expensive (3508x2480 master raster), so
// it is memoized: composing twice with an unchanged CoverSpec reuses the
// cached file.
//
//	path, err := gen.ComposeCover(&catalogo.CoverSpec{
//	    Title:           "CATALOGO 2026",
//	    BackgroundColor: "#1A2B3C",
//	    TitlePosition:   catalogo.TitleCenter,
//	}, nil, false)
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := catalogo.NewGenerator(
//	    catalogo.WithStoreDir("/var/lib/catalogo"),
//	    catalogo.WithFontPath("/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"),
//	    catalogo.WithCurrency("$"),
//	)
//
// # Rendering Backends
//
// Layout decisions are decoupled from painting: the layout engine produces a
// flat list of DrawInstruction values (PageBreak, DrawImage, DrawRect,
// DrawText) consumed by a Renderer. The built-in renderer targets gofpdf;
// implement Renderer to drive a different backend.
package catalogo
