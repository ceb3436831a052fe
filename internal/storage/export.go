package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/episim/internal/epi"
)

type runExport struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

// ExportJSON writes the full run (metadata and trajectory) as one JSON
// document.
func ExportJSON(w io.Writer, meta RunMetadata, traj *epi.Trajectory) error {
	out := runExport{
		Meta:   meta,
		Times:  traj.Times,
		States: make([][]float64, len(traj.States)),
	}
	for i, s := range traj.States {
		out.States[i] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func ExportJSONStdout(meta RunMetadata, traj *epi.Trajectory) error {
	return ExportJSON(os.Stdout, meta, traj)
}

// ExportCSV writes the trajectory with a labelled header row.
func ExportCSV(w io.Writer, labels []string, traj *epi.Trajectory) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(append([]string{"time"}, labels...)); err != nil {
		return err
	}

	for i := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 6, 64)}
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', 12, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
