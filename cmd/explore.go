package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/filter"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/render"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/view"
)

const exploreHelp = `  search <text>        filter nodes by label, id or tag (empty clears)
  type <link-type>     filter links by type (empty clears)
  types                list the link types in the graph
  click <x> <y>        select the node under a screen point
  select <id>          select a node by id
  clear                clear the selection
  down <x> <y>         start dragging the node under a screen point
  grab <id>            start dragging a node by id
  move <x> <y>         move the dragged node
  up                   release the dragged node
  pan <dx> <dy>        pan the view
  zoom <f> [<x> <y>]   zoom by factor around a point
  reset                reset pan and zoom
  load <file>          replace the graph
  detail               show the selected node
  save <file>          write the current frame (.svg, .dot or .json)
  quit                 leave`

var errQuit = errors.New("quit")

func exploreCmd() *cobra.Command {
	var (
		out      string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "explore <file>",
		Short: "Interactively filter, select and drag nodes while the layout runs",
		Long: "Interactively filter, select and drag nodes while the layout runs.\n" +
			"Commands are read from stdin; the live frame is written to --out.\n\n" + exploreHelp,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			c := mustLoadView(args[0])

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			events := make(chan view.Event)
			done := make(chan error, 1)
			r := &render.File{Path: out, Interval: interval}
			go func() { done <- c.Run(ctx, events, r) }()

			ui.Banner("explore " + args[0])
			fmt.Printf("  %s\n\n", ui.Subtle.Sprintf("writing frames to %s; type help for commands", out))

			in := bufio.NewScanner(os.Stdin)
			for prompt(); in.Scan(); prompt() {
				err := runLine(ctx, in.Text(), events)
				if errors.Is(err, errQuit) {
					break
				}
				if err != nil {
					ui.Bad.Printf("  %v\n", err)
				}
			}

			cancel()
			if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&out, "out", "teapa.svg", "SVG file rewritten as the layout moves")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "Minimum time between writes while the layout is running")
	return cmd
}

func prompt() {
	fmt.Print(ui.Brand.Sprint("teapa> "))
}

// send delivers ev unless the loop has already stopped.
func send(ctx context.Context, events chan<- view.Event, ev view.Event) error {
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// inspect runs fn on the loop goroutine and waits for it.
func inspect(ctx context.Context, events chan<- view.Event, fn func(*view.Controller)) error {
	done := make(chan struct{})
	err := send(ctx, events, view.Inspect{Fn: func(c *view.Controller) {
		defer close(done)
		fn(c)
	}})
	if err != nil {
		return err
	}
	<-done
	return nil
}

func runLine(ctx context.Context, line string, events chan<- view.Event) error {
	verb, rest := splitVerb(line)
	switch verb {
	case "":
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Println(exploreHelp)
		return nil

	case "load":
		if rest == "" {
			return errors.New("usage: load <file>")
		}
		data, format, err := readInput(rest)
		if err != nil {
			return err
		}
		result := make(chan error, 1)
		if err := send(ctx, events, view.ApplyGraph{Data: data, Format: format, Result: result}); err != nil {
			return err
		}
		if err := <-result; err != nil {
			return err
		}
		ui.Good.Printf("  %s loaded %s\n", ui.StatusIcon(true), rest)
		return nil

	case "detail":
		return inspect(ctx, events, func(c *view.Controller) { printDetail(c.Detail()) })

	case "types":
		return inspect(ctx, events, func(c *view.Controller) {
			for _, t := range filter.LinkTypes(c.Graph()) {
				fmt.Printf("  %s\n", t)
			}
		})

	case "save":
		if rest == "" {
			return errors.New("usage: save <file>")
		}
		var err error
		ierr := inspect(ctx, events, func(c *view.Controller) {
			var data []byte
			data, err = encodeFrame(c.Frame(), formatFromExt(rest))
			if err == nil {
				err = os.WriteFile(rest, data, 0o644)
			}
		})
		if ierr != nil {
			return ierr
		}
		if err != nil {
			return err
		}
		ui.Good.Printf("  %s wrote %s\n", ui.StatusIcon(true), rest)
		return nil
	}

	ev, err := parseEvent(verb, rest)
	if err != nil {
		return err
	}
	return send(ctx, events, ev)
}

func splitVerb(line string) (string, string) {
	line = strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(verb), strings.TrimSpace(rest)
}

// parseEvent maps a command to the view event it triggers.
func parseEvent(verb, rest string) (view.Event, error) {
	switch verb {
	case "search", "s":
		return view.SetQuery{Query: rest}, nil
	case "type", "t":
		return view.SetLinkType{Type: rest}, nil
	case "select":
		if rest == "" {
			return nil, errors.New("usage: select <id>")
		}
		return view.Select{ID: rest}, nil
	case "clear":
		return view.Deselect{}, nil
	case "grab":
		if rest == "" {
			return nil, errors.New("usage: grab <id>")
		}
		return view.Grab{ID: rest}, nil
	case "up", "release":
		return view.DragEnd{}, nil
	case "reset":
		return view.ResetView{}, nil
	case "click", "down", "move", "pan":
		xy, err := floats(rest, 2, 2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", verb, err)
		}
		switch verb {
		case "click":
			return view.Click{X: xy[0], Y: xy[1]}, nil
		case "down":
			return view.DragStart{X: xy[0], Y: xy[1]}, nil
		case "move":
			return view.DragMove{X: xy[0], Y: xy[1]}, nil
		default:
			return view.Pan{DX: xy[0], DY: xy[1]}, nil
		}
	case "zoom":
		v, err := floats(rest, 1, 3)
		if err != nil || len(v) == 2 {
			return nil, errors.New("usage: zoom <factor> [<x> <y>]")
		}
		if len(v) == 1 {
			return view.Zoom{Factor: v[0]}, nil
		}
		return view.Zoom{Factor: v[0], X: v[1], Y: v[2]}, nil
	default:
		return nil, fmt.Errorf("unknown command %q (type help)", verb)
	}
}

func floats(s string, lo, hi int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) < lo || len(fields) > hi {
		return nil, fmt.Errorf("expected %d to %d numbers, got %d", lo, hi, len(fields))
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", f)
		}
		out[i] = v
	}
	return out, nil
}
