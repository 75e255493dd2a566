package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/time/rate"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/force"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/view"
)

// Label placement relative to the node center.
const (
	labelDX       = 14
	labelDY       = 4
	labelFontSize = 11
)

// SVG draws fr as a standalone SVG document: links under nodes under labels,
// all inside one group carrying the viewport transform.
func SVG(w io.Writer, fr view.Frame) error {
	width, height := int(math.Round(fr.Width)), int(math.Round(fr.Height))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: invalid surface %dx%d", width, height)
	}
	k := fr.Viewport.K
	if k == 0 {
		k = 1
	}
	radius := int(math.Round(fr.NodeRadius))
	if radius <= 0 {
		radius = 10
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+Background.CSS())
	canvas.Gtransform(fmt.Sprintf("translate(%g,%g) scale(%g)", fr.Viewport.X, fr.Viewport.Y, k))

	canvas.Group(`class="links"`, "stroke-linecap:round")
	for _, l := range fr.Links {
		canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2),
			attr("data-key", LinkKey(l.Link)),
			fmt.Sprintf("stroke:%s;stroke-width:%g;opacity:0.9", LinkColor(l.Type).CSS(), StrokeWidth(l.Link)))
	}
	canvas.Gend()

	canvas.Group(`class="nodes"`)
	for _, n := range fr.Nodes {
		stroke, sw := StrokeNode, 1
		if n.Selected {
			stroke, sw = StrokeSelected, 3
		}
		canvas.Group(attr("data-id", n.ID))
		canvas.Circle(px(n.X), px(n.Y), radius,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", NodeColor(n.Node).CSS(), stroke.CSS(), sw))
		canvas.Title(n.DisplayName())
		canvas.Gend()
	}
	canvas.Gend()

	canvas.Group(`class="labels"`,
		fmt.Sprintf("font-size:%dpx;fill:%s;paint-order:stroke;stroke:%s;stroke-width:4;stroke-linejoin:round;pointer-events:none",
			labelFontSize, LabelFill.CSS(), LabelHalo.CSS()))
	for _, n := range fr.Nodes {
		canvas.Text(px(n.X)+labelDX, px(n.Y)+labelDY, n.DisplayName())
	}
	canvas.Gend()

	canvas.Gend()
	canvas.End()
	return nil
}

// WriteSVGFile renders fr to path, replacing it atomically.
func WriteSVGFile(path string, fr view.Frame) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".teapa-*.svg")
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := SVG(tmp, fr); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// File is a view.Renderer that rewrites an SVG file. While the layout is
// running, writes are limited to one per Interval; settled frames are always
// written. A zero Interval writes every frame.
type File struct {
	Path     string
	Interval time.Duration

	limiter *rate.Limiter
}

// Render implements view.Renderer.
func (f *File) Render(fr view.Frame) error {
	if f.Interval > 0 && fr.State == force.Running {
		if f.limiter == nil {
			f.limiter = rate.NewLimiter(rate.Every(f.Interval), 1)
		}
		if !f.limiter.Allow() {
			return nil
		}
	}
	return WriteSVGFile(f.Path, fr)
}

func px(v float64) int {
	return int(math.Round(v))
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}
