package processor

import (
	"fmt"
	"testing"
	"time"

	"github.com/woozymasta/geoplot/internal/geo"
	"github.com/woozymasta/geoplot/internal/state"
	"github.com/woozymasta/geoplot/internal/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	coordPath   = "agents/location"
	featurePath = "agents/activity"
)

func snapshot(coords [][]float64, values any) state.Node {
	rows := make(state.Sequence, len(coords))
	for i, c := range coords {
		row := make(state.Sequence, len(c))
		for j, v := range c {
			row[j] = state.Scalar(v)
		}
		rows[i] = row
	}

	feature, err := state.FromAny(values)
	if err != nil {
		panic(err)
	}

	return state.Mapping{
		"agents": state.Mapping{
			"location": rows,
			"activity": feature,
		},
	}
}

func TestExtract(t *testing.T) {
	traj := state.Trajectory{
		{snapshot([][]float64{{0, 0}}, []any{99.0}), snapshot([][]float64{{1, 2}, {3, 4}}, []any{[]any{1.0}, []any{2.0}})},
		{snapshot([][]float64{{5, 6}, {7, 8}}, []any{3.0, 4.0})},
		{snapshot([][]float64{{9, 9}, {9, 9}}, []any{9.0, 9.0})},
	}

	ext, err := Extract(traj, coordPath, featurePath)
	require.NoError(t, err)

	assert.Equal(t, 2, ext.Episodes)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, ext.Series)
	assert.Equal(t, []geo.LatLon{{Lat: 5, Lon: 6}, {Lat: 7, Lon: 8}}, ext.Positions,
		"positions come from the last consumed episode")
}

func TestExtract_ShortTrajectories(t *testing.T) {
	one := state.Trajectory{{snapshot([][]float64{{1, 2}}, []any{1.0})}}

	for name, traj := range map[string]state.Trajectory{"empty": {}, "single": one} {
		t.Run(name, func(t *testing.T) {
			ext, err := Extract(traj, coordPath, featurePath)
			require.NoError(t, err)
			assert.Empty(t, ext.Positions)
			assert.Empty(t, ext.Series)
			assert.Zero(t, ext.Episodes)
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	good := state.Episode{snapshot([][]float64{{1, 2}}, []any{1.0})}

	tests := []struct {
		name    string
		traj    state.Trajectory
		coord   string
		feature string
		wantErr error
	}{
		{"empty episode", state.Trajectory{{}, good}, coordPath, featurePath, state.ErrEmptyEpisode},
		{"missing coordinates", state.Trajectory{good, good}, "agents/position", featurePath, state.ErrPathNotFound},
		{"missing feature", state.Trajectory{good, good}, coordPath, "agents/mood", state.ErrPathNotFound},
		{"flat coordinates", state.Trajectory{good, good}, "agents/activity", featurePath, state.ErrShape},
		{"null feature value", state.Trajectory{{snapshot([][]float64{{1, 2}, {3, 4}, {5, 6}}, []any{1.0, nil, 3.0})}, good}, coordPath, featurePath, state.ErrShape},
		{"null coordinate row", state.Trajectory{{state.Mapping{"agents": state.Mapping{"location": state.Sequence{state.Null{}}, "activity": state.Sequence{state.Scalar(1)}}}}, good}, coordPath, featurePath, state.ErrShape},
		{"non numeric feature", state.Trajectory{{snapshot([][]float64{{1, 2}}, []any{"x"})}, good}, coordPath, featurePath, state.ErrShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.traj, tt.coord, tt.feature)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAssemble_Scenario(t *testing.T) {
	traj := state.Trajectory{
		{snapshot([][]float64{{10, 20}}, []any{5.0})},
		{snapshot([][]float64{{10, 20}}, []any{7.0})},
		{snapshot([][]float64{{10, 20}}, []any{11.0})},
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	ext, err := Extract(traj, coordPath, featurePath)
	require.NoError(t, err)

	times := timeline.Generate(timeline.Fixed(start), 2*1, 3600*time.Second)
	collections, err := Assemble(ext, times)
	require.NoError(t, err)

	require.Len(t, collections, 1)
	fc := collections[0]
	assert.Equal(t, geo.TypeFeatureCollection, fc.Type)
	require.Len(t, fc.Features, 2)

	for i, want := range []float64{5, 7} {
		f := fc.Features[i]
		assert.Equal(t, []float64{20, 10}, f.Geometry.Coordinates)
		assert.Equal(t, "entity_0", f.Properties.ID)
		assert.Equal(t, want, f.Properties.Value)
	}

	t0, err := time.Parse(time.RFC3339, fc.Features[0].Properties.Time)
	require.NoError(t, err)
	t1, err := time.Parse(time.RFC3339, fc.Features[1].Properties.Time)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, t1.Sub(t0))
	assert.Equal(t, "2024-03-01T00:00:00+00:00", fc.Features[0].Properties.Time)
}

func TestAssemble_Truncates(t *testing.T) {
	ext := Extraction{
		Positions: []geo.LatLon{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		Series:    [][]float64{{1, 2}, {3, 4}, {5, 6}},
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		timestamps int
		want       int
	}{
		{1, 1},
		{3, 3},
		{10, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d timestamps", tt.timestamps), func(t *testing.T) {
			times := timeline.Generate(timeline.Fixed(start), tt.timestamps, time.Minute)
			collections, err := Assemble(ext, times)
			require.NoError(t, err)
			require.Len(t, collections, len(ext.Positions))
			for idx, fc := range collections {
				assert.Len(t, fc.Features, tt.want)
				assert.Equal(t, Steps(times, ext.Series), len(fc.Features))
				assert.Equal(t, EntityID(idx), fc.Features[0].Properties.ID)
			}
		})
	}
}

func TestAssemble_EntityOutOfRange(t *testing.T) {
	ext := Extraction{
		Positions: []geo.LatLon{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		Series:    [][]float64{{1, 2}, {3}},
	}
	times := timeline.Generate(timeline.Fixed(time.Now()), 2, time.Second)

	_, err := Assemble(ext, times)

	var idxErr *IndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 1, idxErr.Entity)
	assert.Equal(t, 1, idxErr.Step)
	assert.Equal(t, 1, idxErr.Length)
	assert.ErrorIs(t, err, state.ErrShape)
}

func TestAssemble_Empty(t *testing.T) {
	times := timeline.Generate(timeline.Fixed(time.Now()), 4, time.Second)

	collections, err := Assemble(Extraction{}, times)
	require.NoError(t, err)
	assert.NotNil(t, collections)
	assert.Empty(t, collections)
}

func TestAssemble_EntityCountFollowsLastEpisode(t *testing.T) {
	traj := state.Trajectory{
		{snapshot([][]float64{{1, 1}}, []any{1.0, 2.0, 3.0})},
		{snapshot([][]float64{{1, 1}, {2, 2}, {3, 3}}, []any{1.0, 2.0, 3.0})},
		{},
	}

	ext, err := Extract(traj, coordPath, featurePath)
	require.NoError(t, err)

	collections, err := Assemble(ext, timeline.Generate(timeline.Fixed(time.Now()), 2, time.Second))
	require.NoError(t, err)
	assert.Len(t, collections, 3)
}
