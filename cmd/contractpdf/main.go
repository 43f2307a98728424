// Command contractpdf regenerates the PDF of a stored contract.
//
//	contractpdf -number CTR-2026-0001 [-out contract.pdf] [-text]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/diewo77/go-contracts/internal/config"
	"github.com/diewo77/go-contracts/internal/db"
	"github.com/diewo77/go-contracts/internal/logx"
	"github.com/diewo77/go-contracts/internal/pdf"
	"github.com/diewo77/go-contracts/internal/services"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], config.Load(), os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code. Logs go to stderr so
// stdout only carries the output path or the contract text.
func run(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("contractpdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	number := fs.String("number", "", "contract number to render")
	out := fs.String("out", "", "output file (default <number>.pdf)")
	textOnly := fs.Bool("text", false, "print the composed text instead of writing a PDF")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *number == "" {
		fs.Usage()
		return 2
	}

	log := logx.NewWithWriter(stderr, "contractpdf", cfg.App.Dev)

	conn, err := db.Open(cfg.Database, false, log)
	if err != nil {
		fmt.Fprintf(stderr, "db error: %v\n", err)
		return 1
	}

	ctx := context.Background()
	contracts := services.NewContractService(conn, log)
	docs := services.NewDocumentService(services.NewSettingsService(conn), newRenderer(cfg.Branding, log), log)

	c, err := contracts.Get(ctx, *number)
	if err != nil {
		fmt.Fprintf(stderr, "load error: %v\n", err)
		return 3
	}

	if *textOnly {
		text, err := docs.Text(ctx, c)
		if err != nil {
			fmt.Fprintf(stderr, "compose error: %v\n", err)
			return 4
		}
		fmt.Fprint(stdout, text)
		return 0
	}

	body, err := docs.Render(ctx, c)
	if err != nil {
		fmt.Fprintf(stderr, "render error: %v\n", err)
		return 4
	}
	path := *out
	if path == "" {
		path = c.Number + ".pdf"
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		fmt.Fprintf(stderr, "write error: %v\n", err)
		return 5
	}
	fmt.Fprintln(stdout, path)
	return 0
}

func newRenderer(b config.BrandingConfig, log *slog.Logger) *pdf.Renderer {
	r := pdf.NewRenderer(pdf.Branding{
		Brand:           b.Brand,
		Subtitle:        b.Subtitle,
		BusinessCaption: b.BusinessCaption,
	}, log)
	if b.BusinessSignaturePath == "" {
		return r
	}
	img, err := sigimage.Load(b.BusinessSignaturePath)
	if err != nil {
		log.Warn("business signature not loaded", "path", b.BusinessSignaturePath, "err", err)
		return r
	}
	r.BusinessSignature = img
	return r
}
