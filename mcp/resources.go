package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	crfgen "github.com/andrewdmarques/Penn-VCC-CRF-Generator"
)

// RegisterDefaultResources adds the built-in resources to the server. Both
// take the file path as a query parameter, e.g. crf://forms?path=dict.csv.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "crf://forms",
		Name:        "Dictionary Forms",
		Description: "Forms of a CSV data dictionary with field counts and matrix groups: crf://forms?path=/path/to/dictionary.csv",
		MIMEType:    "application/json",
		Handler:     handleFormsResource,
	})

	s.AddResource(Resource{
		URI:         "crf://text",
		Name:        "Generated Form Text",
		Description: "Text of a generated PDF, page by page: crf://text?path=/path/to/form.pdf",
		MIMEType:    "text/plain",
		Handler:     handleTextResource,
	})
}

// resourceBase strips the query from a resource URI.
func resourceBase(uri string) string {
	base, _, _ := strings.Cut(uri, "?")
	return base
}

func pathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parsing URI: %w", err)
	}
	path := u.Query().Get("path")
	if path == "" {
		return "", fmt.Errorf("missing 'path' parameter in URI")
	}
	return path, nil
}

func handleFormsResource(_ context.Context, uri string) ([]ResourceContent, error) {
	path, err := pathFromURI(uri)
	if err != nil {
		return nil, err
	}
	records, err := loadRecords(path, "")
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(summarize(crfgen.GroupForms(records, crfgen.ByAppearance)), "", "  ")
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(b)}}, nil
}

func handleTextResource(ctx context.Context, uri string) ([]ResourceContent, error) {
	path, err := pathFromURI(uri)
	if err != nil {
		return nil, err
	}
	text, err := extractText(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{URI: uri, MIMEType: "text/plain", Text: text}}, nil
}
