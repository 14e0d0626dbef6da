// Command crfgen renders a CSV data dictionary into printable PDF forms.
//
//	crfgen -dict dictionary.csv -version v0.41 -out forms/
//
// Settings may also come from a YAML run file given with -config; flags
// that are set explicitly take precedence over the file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	crfgen "github.com/andrewdmarques/Penn-VCC-CRF-Generator"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/dictionary"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pdfcanvas"
)

func main() {
	configPath := flag.String("config", "", "YAML run file")
	dictPath := flag.String("dict", "", "CSV data dictionary")
	mappingPath := flag.String("mapping", "", "YAML column mapping, merged over the REDCap mapping")
	version := flag.String("version", "", "version tag for file names and footers")
	outDir := flag.String("out", "", "output directory")
	workers := flag.Int("workers", 1, "forms rendered concurrently")
	numbering := flag.Bool("numbering", false, "number questions")
	align := flag.String("align", "right", "page header alignment: left or right")
	order := flag.String("order", "appearance", "form order: appearance or name")
	barcode := flag.String("barcode", "none", "footer barcode: none, code128 or pdf417")
	noCombined := flag.Bool("no-combined", false, "skip the combined document")
	pick := flag.Bool("pick", false, "choose forms interactively")
	verbose := flag.Bool("v", false, "log progress")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("crfgen: ")

	var cfg crfgen.Config
	if *configPath != "" {
		var err error
		if cfg, err = crfgen.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Dictionary = *dictPath
		case "version":
			opts = append(opts, crfgen.WithVersion(*version))
		case "out":
			opts = append(opts, crfgen.WithOutputDir(*outDir))
		case "workers":
			opts = append(opts, crfgen.WithWorkers(*workers))
		case "numbering":
			opts = append(opts, crfgen.WithNumbering(*numbering))
		case "align":
			opts = append(opts, crfgen.WithHeaderAlign(layout.ParseAlign(*align)))
		case "order":
			o, err := crfgen.ParseOrder(*order)
			if err != nil {
				flagErr = err
			}
			opts = append(opts, crfgen.WithOrder(o))
		case "barcode":
			sym, err := pdfcanvas.ParseSymbology(*barcode)
			if err != nil {
				flagErr = err
			}
			opts = append(opts, crfgen.WithBarcode(sym))
		case "no-combined":
			opts = append(opts, crfgen.WithCombined(!*noCombined))
		}
	})
	if flagErr != nil {
		log.Fatal(flagErr)
	}
	if cfg.Dictionary == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		opts = append(opts, crfgen.WithLogger(log.Default()))
	}

	mapping := dictionary.REDCapMapping().Merge(cfg.Mapping)
	if *mappingPath != "" {
		m, err := dictionary.LoadMapping(*mappingPath)
		if err != nil {
			log.Fatal(err)
		}
		mapping = mapping.Merge(m)
	}

	records, err := dictionary.ReadFile(cfg.Dictionary, mapping)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *pick {
		g, err := crfgen.New(opts...)
		if err != nil {
			log.Fatal(err)
		}
		chosen, err := pickForms(ctx, g.Forms(records))
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, crfgen.WithForms(chosen...))
	}

	g, err := crfgen.New(opts...)
	if err != nil {
		log.Fatal(err)
	}
	report, err := g.Generate(ctx, records)
	if err != nil {
		log.Fatal(err)
	}

	for _, d := range report.Documents {
		fmt.Printf("%s\t%d pages\n", d.Path, d.Pages)
	}
	if report.Combined != "" {
		fmt.Printf("%s\t%d pages\n", report.Combined, report.CombinedPages)
	}
	if report.Failed() {
		log.Fatal(report.Err())
	}
}
