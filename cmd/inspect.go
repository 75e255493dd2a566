package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/filter"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
)

func inspectCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:     "inspect <file>",
		Aliases: []string{"stats"},
		Short:   "Summarize a graph: counts, link types, best-connected nodes",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			g := mustLoadGraph(args[0])
			st := g.Stats()

			ui.Banner("inspect " + args[0])
			ui.KV("Nodes", st.Nodes)
			ui.KV("Links", st.Links)
			ui.KV("Types", st.NodeTypes)
			ui.KV("Parties", st.Parties)
			ui.KV("Tags", st.Tags)
			fmt.Println()

			if rows := linkTypeRows(g); len(rows) > 0 {
				ui.Table([]string{"LINK TYPE", "COUNT"}, rows)
				fmt.Println()
			}
			if rows := degreeRows(g, top); len(rows) > 0 {
				ui.Table([]string{"NODE", "LABEL", "DEGREE"}, rows)
			}
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of best-connected nodes to list")
	return cmd
}

// linkTypeRows counts the links the type selector would keep for each type.
func linkTypeRows(g graph.Graph) [][]string {
	types := filter.LinkTypes(g)
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{t, strconv.Itoa(len(filter.Apply(g, "", t).Links))})
	}
	return rows
}

// degreeRows lists the top n nodes by degree, ties broken by id.
func degreeRows(g graph.Graph, n int) [][]string {
	deg := g.Degree()
	nodes := append([]graph.Node(nil), g.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		di, dj := deg[nodes[i].ID], deg[nodes[j].ID]
		if di != dj {
			return di > dj
		}
		return nodes[i].ID < nodes[j].ID
	})
	if n > 0 && len(nodes) > n {
		nodes = nodes[:n]
	}

	rows := make([][]string, 0, len(nodes))
	for _, nd := range nodes {
		rows = append(rows, []string{nd.ID, nd.DisplayName(), strconv.Itoa(deg[nd.ID])})
	}
	return rows
}
