// Package export renders trajectories to image files via gonum/plot.
package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/episim/internal/epi"
)

// FileRenderer writes one line per compartment to an image file. The
// format is inferred from the path extension (.png, .svg, .pdf).
type FileRenderer struct {
	Path  string
	Title string
}

func NewFileRenderer(path, title string) *FileRenderer {
	return &FileRenderer{Path: path, Title: title}
}

func (r *FileRenderer) Render(tr *epi.Trajectory, labels []string) error {
	if tr.Len() == 0 {
		return fmt.Errorf("nothing to plot: empty trajectory")
	}

	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = "time (days)"
	p.Y.Label.Text = "population fraction"
	p.Legend.Top = true
	p.Legend.Left = false

	for i, label := range labels {
		pts := make(plotter.XYs, tr.Len())
		for j := range pts {
			pts[j].X = tr.Times[j]
			pts[j].Y = tr.States[j][i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)

		p.Add(line)
		p.Legend.Add(label, line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, r.Path)
}
