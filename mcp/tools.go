package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Geek0x0/pdf"

	crfgen "github.com/andrewdmarques/Penn-VCC-CRF-Generator"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/dictionary"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pageops"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pdfcanvas"
)

// RegisterDefaultTools adds all built-in tools to the server.
func RegisterDefaultTools(s *Server) {
	s.AddTool(listFormsTool())
	s.AddTool(renderFormsTool())
	s.AddTool(mergePDFsTool())
	s.AddTool(readPDFTextTool())
}

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// loadRecords reads a dictionary with the REDCap mapping, extended by an
// optional YAML mapping file.
func loadRecords(path, mappingPath string) ([]field.Record, error) {
	if path == "" {
		return nil, fmt.Errorf("missing 'dictionary' argument")
	}
	m := dictionary.REDCapMapping()
	if mappingPath != "" {
		extra, err := dictionary.LoadMapping(mappingPath)
		if err != nil {
			return nil, err
		}
		m = m.Merge(extra)
	}
	return dictionary.ReadFile(path, m)
}

var dictionarySchema = map[string]any{
	"dictionary": map[string]any{
		"type":        "string",
		"description": "Path to the CSV data dictionary (REDCap export or canonical columns)",
	},
	"mapping": map[string]any{
		"type":        "string",
		"description": "Optional YAML column/type mapping merged over the REDCap mapping",
	},
}

func withDictionary(props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+len(dictionarySchema))
	for k, v := range dictionarySchema {
		out[k] = v
	}
	for k, v := range props {
		out[k] = v
	}
	return out
}

// FormSummary describes one form of a dictionary.
type FormSummary struct {
	Name     string         `json:"name"`
	Fields   int            `json:"fields"`
	Types    map[string]int `json:"types"`
	Matrices []string       `json:"matrices,omitempty"`
}

// summarize describes forms in order. Matrix names are listed once per
// contiguous group.
func summarize(forms []crfgen.Form) []FormSummary {
	out := make([]FormSummary, 0, len(forms))
	for _, f := range forms {
		sum := FormSummary{Name: f.Name, Fields: len(f.Records), Types: map[string]int{}}
		for _, rec := range f.Records {
			sum.Types[rec.Type.String()]++
		}
		for _, run := range layout.Partition(f.Records) {
			if run.IsMatrix() {
				sum.Matrices = append(sum.Matrices, run.Matrix)
			}
		}
		out = append(out, sum)
	}
	return out
}

func listFormsTool() Tool {
	return Tool{
		Name:        "list_forms",
		Description: "List the forms defined in a CSV data dictionary with their field counts, field types and matrix groups.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": withDictionary(nil),
			"required":   []string{"dictionary"},
		},
		Handler: handleListForms,
	}
}

func handleListForms(_ context.Context, args json.RawMessage) (ToolResult, error) {
	var p struct {
		Dictionary string `json:"dictionary"`
		Mapping    string `json:"mapping"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return ToolResult{}, err
	}
	records, err := loadRecords(p.Dictionary, p.Mapping)
	if err != nil {
		return ToolResult{}, err
	}
	return jsonResult(summarize(crfgen.GroupForms(records, crfgen.ByAppearance)))
}

func renderFormsTool() Tool {
	return Tool{
		Name:        "render_forms",
		Description: "Render every form of a CSV data dictionary to its own printable PDF and merge them into a combined PDF. Returns the written files and any per-form failures.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": withDictionary(map[string]any{
				"version":     map[string]any{"type": "string", "description": "Version tag used in file names and footers"},
				"outputDir":   map[string]any{"type": "string", "description": "Directory for the generated PDFs"},
				"forms":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Only render these forms"},
				"numbering":   map[string]any{"type": "boolean", "description": "Number questions"},
				"order":       map[string]any{"type": "string", "enum": []string{"appearance", "name"}},
				"headerAlign": map[string]any{"type": "string", "enum": []string{"left", "right"}},
				"barcode":     map[string]any{"type": "string", "enum": []string{"none", "code128", "pdf417"}},
				"workers":     map[string]any{"type": "number", "description": "Forms rendered concurrently"},
				"combined":    map[string]any{"type": "boolean", "description": "Write the combined PDF (default true)"},
			}),
			"required": []string{"dictionary", "version", "outputDir"},
		},
		Handler: handleRenderForms,
	}
}

// renderReport is the JSON form of crfgen.Report.
type renderReport struct {
	Documents     []crfgen.Document `json:"documents"`
	Combined      string            `json:"combined,omitempty"`
	CombinedPages int               `json:"combinedPages,omitempty"`
	Failures      []string          `json:"failures,omitempty"`
	MergeError    string            `json:"mergeError,omitempty"`
}

func handleRenderForms(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var p struct {
		Dictionary  string   `json:"dictionary"`
		Mapping     string   `json:"mapping"`
		Version     string   `json:"version"`
		OutputDir   string   `json:"outputDir"`
		Forms       []string `json:"forms"`
		Numbering   bool     `json:"numbering"`
		Order       string   `json:"order"`
		HeaderAlign string   `json:"headerAlign"`
		Barcode     string   `json:"barcode"`
		Workers     int      `json:"workers"`
		Combined    *bool    `json:"combined"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return ToolResult{}, err
	}
	if p.OutputDir == "" {
		return ToolResult{}, fmt.Errorf("missing 'outputDir' argument")
	}
	records, err := loadRecords(p.Dictionary, p.Mapping)
	if err != nil {
		return ToolResult{}, err
	}

	order, err := crfgen.ParseOrder(p.Order)
	if err != nil {
		return ToolResult{}, err
	}
	sym, err := pdfcanvas.ParseSymbology(p.Barcode)
	if err != nil {
		return ToolResult{}, err
	}
	opts := []crfgen.Option{
		crfgen.WithVersion(p.Version),
		crfgen.WithOutputDir(p.OutputDir),
		crfgen.WithForms(p.Forms...),
		crfgen.WithNumbering(p.Numbering),
		crfgen.WithOrder(order),
		crfgen.WithHeaderAlign(layout.ParseAlign(p.HeaderAlign)),
		crfgen.WithBarcode(sym),
		crfgen.WithWorkers(p.Workers),
	}
	if p.Combined != nil {
		opts = append(opts, crfgen.WithCombined(*p.Combined))
	}
	g, err := crfgen.New(opts...)
	if err != nil {
		return ToolResult{}, err
	}

	report, err := g.Generate(ctx, records)
	if err != nil {
		return ToolResult{}, err
	}
	out := renderReport{
		Documents:     report.Documents,
		Combined:      report.Combined,
		CombinedPages: report.CombinedPages,
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, f.Error())
	}
	if report.MergeErr != nil {
		out.MergeError = report.MergeErr.Error()
	}
	res, err := jsonResult(out)
	res.IsError = err == nil && report.Failed()
	return res, err
}

func mergePDFsTool() Tool {
	return Tool{
		Name:        "merge_pdfs",
		Description: "Merge PDF files into one, in the order given. Returns the page count of the result.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"inputPaths": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "PDF files to merge, in order",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Path of the merged PDF",
				},
			},
			"required": []string{"inputPaths", "outputPath"},
		},
		Handler: handleMergePDFs,
	}
}

func handleMergePDFs(_ context.Context, args json.RawMessage) (ToolResult, error) {
	var p struct {
		InputPaths []string `json:"inputPaths"`
		OutputPath string   `json:"outputPath"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return ToolResult{}, err
	}
	if p.OutputPath == "" {
		return ToolResult{}, fmt.Errorf("missing 'outputPath' argument")
	}
	if err := pageops.MergeFiles(p.OutputPath, p.InputPaths...); err != nil {
		return ToolResult{}, err
	}
	pages, err := pageops.PageCount(p.OutputPath)
	if err != nil {
		return ToolResult{}, err
	}
	return textResult(fmt.Sprintf("Merged %d files into %s (%d pages)", len(p.InputPaths), p.OutputPath, pages)), nil
}

func readPDFTextTool() Tool {
	return Tool{
		Name:        "read_pdf_text",
		Description: "Extract the text of a PDF, page by page. Useful to check generated forms.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the PDF file",
				},
				"pages": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "number"},
					"description": "Page numbers to extract (1-based). Omit for all pages.",
				},
			},
			"required": []string{"path"},
		},
		Handler: handleReadPDFText,
	}
}

func handleReadPDFText(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var p struct {
		Path  string `json:"path"`
		Pages []int  `json:"pages"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return ToolResult{}, err
	}
	if p.Path == "" {
		return ToolResult{}, fmt.Errorf("missing 'path' argument")
	}
	text, err := extractText(ctx, p.Path, p.Pages)
	if err != nil {
		return ToolResult{}, err
	}
	return textResult(text), nil
}

// extractText returns the text of the given pages, or of all pages when
// pages is empty, each under a "--- Page N ---" line.
func extractText(ctx context.Context, path string, pages []int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	if len(pages) == 0 {
		for i := 1; i <= r.NumPage(); i++ {
			pages = append(pages, i)
		}
	}
	var b strings.Builder
	for _, n := range pages {
		if n < 1 || n > r.NumPage() {
			fmt.Fprintf(&b, "--- Page %d (out of range, document has %d) ---\n\n", n, r.NumPage())
			continue
		}
		text, err := r.Page(n).GetPlainText(ctx, nil)
		if err != nil {
			fmt.Fprintf(&b, "--- Page %d (error: %v) ---\n\n", n, err)
			continue
		}
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n\n", n, text)
	}
	return b.String(), nil
}
