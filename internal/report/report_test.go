package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"schemadiff/internal/core"
	"schemadiff/internal/diff"
)

func TestBuildSummary(t *testing.T) {
	d := diff.Compare(
		core.Schema{Tables: []core.Table{{Name: "users"}}},
		core.Schema{Tables: []core.Table{{Name: "users"}, {Name: "orders"}}},
	)

	r := Build(d, Metadata{SourceEngine: "postgres", TargetEngine: "postgres"}, 1, 2, nil)
	require.Equal(t, 1, r.Summary.TablesExtra)
	require.Equal(t, 0, r.Summary.TablesMissing)
	require.Equal(t, 3, r.Summary.TablesCompared)
	require.Equal(t, 1, r.Summary.DifferencesFound)
	require.False(t, r.IsEmpty())
}

func TestReportEmpty(t *testing.T) {
	d := diff.Compare(core.Schema{}, core.Schema{})
	r := Build(d, Metadata{}, 0, 0, nil)
	require.True(t, r.IsEmpty())
	require.Equal(t, 0, r.Summary.DifferencesFound)
}
