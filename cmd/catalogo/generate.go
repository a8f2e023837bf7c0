package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	catalogo "github.com/galvez/go-catalogo"
	"github.com/galvez/go-catalogo/internal/fileutil"
	"github.com/galvez/go-catalogo/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags  = errors.New("invalid flags")
	ErrNoTable       = errors.New("no product table: use --table <file.xlsx>")
	ErrReadTable     = errors.New("failed to read product table")
	ErrReadImages    = errors.New("failed to read image directory")
	ErrReadLogo      = errors.New("failed to read logo file")
	ErrReadCoverSpec = errors.New("failed to read cover spec")
	ErrReadCoverBG   = errors.New("failed to read cover background")
	ErrWritePDF      = errors.New("failed to write output PDF")
)

// defaultOutputPath is used when neither flag nor config names an output.
const defaultOutputPath = "catalogo.pdf"

// run parses arguments, assembles the generator, and drives the pipeline:
// import images, set logo, compose cover, generate, write.
func run(ctx context.Context, args []string, stdout, stderr *os.File) error {
	flags, _, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Fprintf(stdout, "catalogo %s\n", Version)
		return nil
	}

	cfg := DefaultConfig()
	if flags.common.config != "" {
		cfg, err = LoadConfig(flags.common.config)
		if err != nil {
			return err
		}
	}
	mergeFlags(cfg, flags)

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	if flags.clean {
		if err := gen.Clean(); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintln(stdout, "Archivos eliminados correctamente")
		}
		return nil
	}

	if flags.input.table == "" {
		return ErrNoTable
	}
	tableBytes, err := os.ReadFile(flags.input.table) // #nosec G304 -- table path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadTable, err)
	}
	rows, err := catalogo.ParseTable(tableBytes)
	if err != nil {
		return err
	}

	if flags.input.logo != "" {
		if err := importLogo(gen, flags.input.logo); err != nil {
			return err
		}
	}

	if flags.input.imagesDir != "" {
		report, err := importImages(gen, rows, flags.input.imagesDir)
		if err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintln(stdout, report.Summary())
			printReportDetail(stdout, report)
		}
	}

	coverPath, err := composeCover(gen, cfg, flags)
	if err != nil {
		return err
	}
	if coverPath != "" && flags.common.verbose {
		fmt.Fprintf(stderr, "Cover: %s\n", coverPath)
	}

	result, err := gen.Generate(ctx, catalogo.Input{Rows: rows, CoverPath: coverPath})
	if err != nil {
		return err
	}

	outPath := cfg.Output.Path
	if outPath == "" {
		outPath = defaultOutputPath
	}
	if err := os.WriteFile(outPath, result.PDF, 0o640); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(stdout, "%s: %d productos, %d paginas\n", outPath, len(rows), result.Pages)
		if len(result.MissingImages) > 0 {
			fmt.Fprintf(stdout, "Productos sin imagen: %v\n", result.MissingImages)
		}
	}
	return nil
}

// newGenerator builds the generator from the merged configuration.
func newGenerator(cfg *Config) (*catalogo.Generator, error) {
	var opts []catalogo.Option
	if cfg.Store.Dir != "" {
		opts = append(opts, catalogo.WithStoreDir(cfg.Store.Dir))
	}
	if cfg.Font.Path != "" {
		opts = append(opts, catalogo.WithFontPath(cfg.Font.Path))
	}
	if cfg.Currency != "" {
		opts = append(opts, catalogo.WithCurrency(cfg.Currency))
	}
	return catalogo.NewGenerator(opts...)
}

// importLogo reads and stores the company logo.
func importLogo(gen *catalogo.Generator, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- logo path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadLogo, err)
	}
	return gen.SetLogo(filepath.Base(path), data)
}

// importImages loads every raster file in dir and resolves it against the
// table's code set.
func importImages(gen *catalogo.Generator, rows []catalogo.ProductRow, dir string) (catalogo.Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return catalogo.Report{}, fmt.Errorf("%w: %v", ErrReadImages, err)
	}

	var files []catalogo.UploadFile
	for _, entry := range entries {
		if entry.IsDir() || !fileutil.IsImagePath(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name())) // #nosec G304 -- image dir is user-provided
		if err != nil {
			return catalogo.Report{}, fmt.Errorf("%w: %s: %v", ErrReadImages, entry.Name(), err)
		}
		files = append(files, catalogo.UploadFile{Name: entry.Name(), Data: data})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	codes := make([]string, len(rows))
	for i, row := range rows {
		codes[i] = row.Code
	}
	return gen.ImportImages(codes, files)
}

// composeCover loads the cover spec and background (when configured) and
// renders the cover, returning its path. Returns "" when no cover is wanted.
func composeCover(gen *catalogo.Generator, cfg *Config, flags *generateFlags) (string, error) {
	if flags.cover.disabled || cfg.Cover.Spec == "" {
		return "", nil
	}

	specBytes, err := os.ReadFile(cfg.Cover.Spec) // #nosec G304 -- cover spec path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCoverSpec, err)
	}
	var spec catalogo.CoverSpec
	if err := yamlutil.UnmarshalStrict(specBytes, &spec); err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCoverSpec, err)
	}

	var background []byte
	if cfg.Cover.Background != "" {
		background, err = os.ReadFile(cfg.Cover.Background) // #nosec G304 -- background path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCoverBG, err)
		}
	}

	return gen.ComposeCover(&spec, background, flags.cover.force)
}

// printReportDetail prints the warning and informational lists, mirroring
// the original tool's operator feedback.
func printReportDetail(stdout *os.File, report catalogo.Report) {
	if len(report.Unmatched) > 0 {
		fmt.Fprintln(stdout, "Imagenes que no coinciden con ningun codigo:")
		for _, name := range report.Unmatched {
			fmt.Fprintf(stdout, "  %s\n", name)
		}
	}
	if len(report.Missing) > 0 {
		fmt.Fprintln(stdout, "Productos que aun no tienen imagen:")
		for _, code := range report.Missing {
			fmt.Fprintf(stdout, "  %s\n", code)
		}
	}
}
