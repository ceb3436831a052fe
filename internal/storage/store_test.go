package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/episim/internal/epi"
)

func sampleTrajectory() *epi.Trajectory {
	return &epi.Trajectory{
		Times: []float64{0, 1, 2},
		States: []epi.State{
			{1.0, 1.27e-6, 0},
			{0.999, 0.0005, 0.0005},
			{0.998, 0.001, 0.001},
		},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Model:      "sir",
		Integrator: "rk45",
		Params:     map[string]float64{"beta": 0.5, "gamma": 1.0 / 3.0},
		Labels:     []string{"S", "I", "R"},
		TStart:     0,
		TEnd:       2,
		Interval:   1,
		Metrics:    map[string]float64{"peak_infection": 0.001},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleMeta(), sampleTrajectory())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "sir_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "sir", meta.Model)
	assert.Equal(t, []string{"S", "I", "R"}, meta.Labels)
	assert.Equal(t, 0.5, meta.Params["beta"])

	traj, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	require.Equal(t, 3, traj.Len())
	assert.Equal(t, 1.27e-6, traj.States[0][1])
	assert.Equal(t, []float64{0, 1, 2}, traj.Times)
}

func TestSaveUniqueRunIDs(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	id1, err := st.Save(sampleMeta(), sampleTrajectory())
	require.NoError(t, err)
	id2, err := st.Save(sampleMeta(), sampleTrajectory())
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Save(sampleMeta(), sampleTrajectory())
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("sir_12345")
	assert.Error(t, err)

	_, err = st.LoadTrajectory("sir_12345")
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []string{"S", "I", "R"}, sampleTrajectory()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,S,I,R", lines[0])
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, sampleMeta(), sampleTrajectory()))

	var out struct {
		Meta   RunMetadata `json:"meta"`
		Times  []float64   `json:"times"`
		States [][]float64 `json:"states"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "sir", out.Meta.Model)
	assert.Len(t, out.States, 3)
	assert.Equal(t, []float64{0, 1, 2}, out.Times)
}
