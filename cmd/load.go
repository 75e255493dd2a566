package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ingest"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/view"
)

// readInput reads a graph document from path, or stdin for "-", and picks
// its format from --format or the file extension.
func readInput(path string) ([]byte, ingest.Format, error) {
	format := ingest.FormatFromPath(path)
	if inputFormat != "" {
		f, err := ingest.ParseFormat(inputFormat)
		if err != nil {
			return nil, "", err
		}
		format = f
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, format, nil
}

func mustLoadGraph(path string) graph.Graph {
	data, format, err := readInput(path)
	if err != nil {
		ui.Bad.Printf("  %v\n", err)
		os.Exit(1)
	}
	g, err := ingest.Parse(data, format)
	if err != nil {
		ui.Bad.Printf("  %s: %v\n", path, err)
		os.Exit(1)
	}
	return g
}

// mustLoadView builds a controller from the loaded config and installs the graph
// at path.
func mustLoadView(path string) *view.Controller {
	data, format, err := readInput(path)
	if err != nil {
		ui.Bad.Printf("  %v\n", err)
		os.Exit(1)
	}
	c := view.New(view.OptionsFromConfig(cfg), logger)
	if err := c.Apply(data, format); err != nil {
		ui.Bad.Printf("  %s: %v\n", path, err)
		os.Exit(1)
	}
	return c
}
