package crfgen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/dictionary"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pdfcanvas"
)

// Config is the file form of a run. Zero values keep the defaults.
type Config struct {
	Dictionary      string             `yaml:"dictionary"`
	Version         string             `yaml:"version"`
	OutputDir       string             `yaml:"output_dir"`
	NamePattern     string             `yaml:"name_pattern"`
	CombinedPattern string             `yaml:"combined_pattern"`
	HeaderAlign     string             `yaml:"header_align"`
	Numbering       bool               `yaml:"numbering"`
	Workers         int                `yaml:"workers"`
	FormOrder       string             `yaml:"form_order"`
	Forms           []string           `yaml:"forms"`
	Barcode         string             `yaml:"barcode"`
	NoFooter        bool               `yaml:"no_footer"`
	NoCombined      bool               `yaml:"no_combined"`
	Mapping         dictionary.Mapping `yaml:"mapping"`
}

// LoadConfig reads a YAML run file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("crfgen: opening config: %w", err)
	}
	defer f.Close()
	return ReadConfig(f)
}

// ReadConfig decodes a YAML run file from r. An empty input is a zero
// Config.
func ReadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("crfgen: decoding config: %w", err)
	}
	return cfg, nil
}

// Options converts the file settings to generator options.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	if c.Version != "" {
		opts = append(opts, WithVersion(c.Version))
	}
	if c.OutputDir != "" {
		opts = append(opts, WithOutputDir(c.OutputDir))
	}
	if c.NamePattern != "" {
		opts = append(opts, WithNamePattern(c.NamePattern))
	}
	if c.CombinedPattern != "" {
		opts = append(opts, WithCombinedPattern(c.CombinedPattern))
	}
	if c.HeaderAlign != "" {
		opts = append(opts, WithHeaderAlign(layout.ParseAlign(c.HeaderAlign)))
	}
	if c.Numbering {
		opts = append(opts, WithNumbering(true))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	if c.FormOrder != "" {
		order, err := ParseOrder(c.FormOrder)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOrder(order))
	}
	if len(c.Forms) > 0 {
		opts = append(opts, WithForms(c.Forms...))
	}
	if c.Barcode != "" {
		sym, err := pdfcanvas.ParseSymbology(c.Barcode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithBarcode(sym))
	}
	if c.NoFooter {
		opts = append(opts, WithFooter(false))
	}
	if c.NoCombined {
		opts = append(opts, WithCombined(false))
	}
	return opts, nil
}
