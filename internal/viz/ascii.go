package viz

import (
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/episim/internal/epi"
)

var seriesPalette = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Default,
}

// ASCIIRenderer plots every compartment of a trajectory as one
// multi-series terminal graph with a legend.
type ASCIIRenderer struct {
	Width   int
	Height  int
	Caption string
	Out     io.Writer
}

func NewASCIIRenderer(caption string) *ASCIIRenderer {
	return &ASCIIRenderer{
		Width:   80,
		Height:  15,
		Caption: caption,
		Out:     os.Stdout,
	}
}

func (r *ASCIIRenderer) Render(tr *epi.Trajectory, labels []string) error {
	if tr.Len() == 0 {
		return fmt.Errorf("nothing to plot: empty trajectory")
	}

	series := make([][]float64, len(labels))
	for i := range labels {
		series[i] = tr.Series(i)
	}

	colors := make([]asciigraph.AnsiColor, len(labels))
	for i := range colors {
		colors[i] = seriesPalette[i%len(seriesPalette)]
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(r.Height),
		asciigraph.Width(r.Width),
		asciigraph.Caption(r.Caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(labels...),
	)

	_, err := fmt.Fprintln(r.Out, graph)
	return err
}
