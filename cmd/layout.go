package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/logging"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/render"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/view"
)

// placedNode is one entry of the JSON layout output.
type placedNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func layoutCmd() *cobra.Command {
	var (
		query    string
		linkType string
		out      string
		output   string
		ticks    int
		seed     int64
		selectID string
		zoom     float64
	)

	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Run the force layout to rest and write SVG, DOT or JSON",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if seed != 0 {
				cfg.Simulation.Seed = seed
			}
			c := mustLoadView(args[0])
			c.SetQuery(query)
			c.SetLinkType(linkType)
			if selectID != "" && !c.Select(selectID) {
				ui.Warn.Printf("  %s no node with id %q\n", ui.WarnIcon(), selectID)
			}
			if zoom != 0 {
				c.Zoom(zoom, cfg.Viewport.Width/2, cfg.Viewport.Height/2)
			}

			n, err := c.Settle(ticks)
			if err != nil {
				ui.Bad.Printf("  layout: %v\n", err)
				os.Exit(1)
			}
			logger.Info("layout done",
				logging.FieldFile, args[0],
				logging.FieldTicks, n,
				logging.FieldNodes, len(c.Filtered().Nodes),
			)

			format := output
			if format == "" {
				format = formatFromExt(out)
			}
			data, err := encodeFrame(c.Frame(), format)
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			if out == "" || out == "-" {
				os.Stdout.Write(data)
				return
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Wrote %s (%d nodes, %d ticks, %s)\n",
				ui.StatusIcon(true), out, len(c.Filtered().Nodes), n, c.State())
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search text")
	cmd.Flags().StringVarP(&linkType, "type", "t", "", "Link type (empty for any)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: svg, dot or json (default: from --out, else svg)")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "Maximum ticks (default simulation.max_ticks)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for initial placement")
	cmd.Flags().StringVar(&selectID, "select", "", "Highlight a node")
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "Zoom factor around the center")
	return cmd
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return "dot"
	case ".json":
		return "json"
	default:
		return "svg"
	}
}

func encodeFrame(fr view.Frame, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "svg":
		if err := render.SVG(&buf, fr); err != nil {
			return nil, err
		}
	case "dot":
		io.WriteString(&buf, render.DOT(fr))
	case "json":
		nodes := make([]placedNode, len(fr.Nodes))
		for i, n := range fr.Nodes {
			nodes[i] = placedNode{ID: n.ID, Label: n.DisplayName(), X: n.X, Y: n.Y}
		}
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nodes); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown output format: %s (use svg, dot or json)", format)
	}
	return buf.Bytes(), nil
}
