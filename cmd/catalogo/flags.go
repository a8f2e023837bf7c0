package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds input source flags.
type inputFlags struct {
	table     string // .xlsx product table path
	imagesDir string // directory of product images to import
	logo      string // company logo path
}

// coverFlags holds cover composition flags.
type coverFlags struct {
	spec       string // cover spec YAML name or path
	background string // cover background image path
	force      bool   // bypass the cover cache once
	disabled   bool   // skip the cover page
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	input    inputFlags
	cover    coverFlags
	output   string
	storeDir string
	fontPath string
	currency string
	clean    bool
	version  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addInputFlags adds input source flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.table, "table", "t", "", "product table .xlsx (Codigo, Descripcion, Precio)")
	fs.StringVarP(&f.imagesDir, "images", "i", "", "directory of product images to import")
	fs.StringVar(&f.logo, "logo", "", "company logo image path")
}

// addCoverFlags adds cover flags to a FlagSet.
func addCoverFlags(fs *flag.FlagSet, f *coverFlags) {
	fs.StringVar(&f.spec, "cover", "", "cover spec YAML name or path")
	fs.StringVar(&f.background, "cover-bg", "", "cover background image path")
	fs.BoolVar(&f.force, "force-cover", false, "re-render the cover even if unchanged")
	fs.BoolVar(&f.disabled, "no-cover", false, "skip the cover page")
}

// parseFlags parses CLI arguments into generateFlags plus positional args.
func parseFlags(args []string) (*generateFlags, []string, error) {
	flags := &generateFlags{}

	fs := flag.NewFlagSet("catalogo", flag.ContinueOnError)
	addCommonFlags(fs, &flags.common)
	addInputFlags(fs, &flags.input)
	addCoverFlags(fs, &flags.cover)
	fs.StringVarP(&flags.output, "out", "o", "", "output PDF path (default catalogo.pdf)")
	fs.StringVar(&flags.storeDir, "store", "", "asset store directory (default mi_catalogo)")
	fs.StringVar(&flags.fontPath, "font", "", "TTF font file for cover text")
	fs.StringVar(&flags.currency, "currency", "", "currency symbol for price tags (default $)")
	fs.BoolVar(&flags.clean, "clean", false, "remove stored images, logo, and cover, then exit")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	return flags, fs.Args(), nil
}
