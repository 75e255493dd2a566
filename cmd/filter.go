package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/filter"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/logging"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
)

func filterCmd() *cobra.Command {
	var (
		query    string
		linkType string
		output   string
		idsOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "filter <file>",
		Short: "Print the subgraph matching a search and link type",
		Long: "Print the subgraph matching a search and link type.\n\n" +
			"Search is accent and case insensitive over label, id and tags.\n" +
			"Link types: " + strings.Join([]string{
			graph.LinkInvestigacion, graph.LinkSenalamiento, graph.LinkAlianza,
			graph.LinkNegocio, graph.LinkAsociacion,
		}, ", "),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			g := mustLoadGraph(args[0])
			r := filter.Apply(g, query, linkType)
			logger.Debug("filtered",
				logging.FieldFile, args[0],
				logging.FieldQuery, query,
				logging.FieldLinkType, linkType,
				logging.FieldNodes, len(r.Nodes),
				logging.FieldLinks, len(r.Links),
			)

			if idsOnly {
				for _, n := range r.Nodes {
					fmt.Println(n.ID)
				}
				return
			}

			data, err := encodeSnapshot(graph.NewSnapshot(r.Graph()), output)
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			os.Stdout.Write(data)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search text")
	cmd.Flags().StringVarP(&linkType, "type", "t", "", "Link type (empty for any)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&idsOnly, "ids", false, "Print only the ids of the matching nodes")
	return cmd
}

func encodeSnapshot(s graph.Snapshot, output string) ([]byte, error) {
	switch strings.ToLower(output) {
	case "json", "":
		data, err := s.EncodeJSON()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return s.EncodeYAML()
	default:
		return nil, fmt.Errorf("unknown output format: %s (use json or yaml)", output)
	}
}
