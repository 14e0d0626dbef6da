// Command crfgen-mcp is an MCP (Model Context Protocol) server that lets AI
// assistants inspect data dictionaries and generate printable forms.
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "crfgen": {
//	      "command": "crfgen-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - list_forms: forms, field types and matrix groups of a dictionary
//   - render_forms: generate per-form and combined PDFs
//   - merge_pdfs: merge PDF files in order
//   - read_pdf_text: extract the text of a PDF
//
// # Available Resources
//
//   - crf://forms?path=... : forms of a dictionary
//   - crf://text?path=... : text of a generated PDF
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/mcp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := log.New(os.Stderr, "crfgen-mcp: ", 0)
	server := mcp.NewServer(mcp.WithLogger(logger))

	mcp.RegisterDefaultTools(server)
	mcp.RegisterDefaultResources(server)

	if err := server.Run(ctx); err != nil {
		logger.Fatal(err)
	}
}
