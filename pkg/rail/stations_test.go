package rail_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwatch/railwatch/pkg/rail"
)

func TestLoadStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	data := []byte(`
WAT: London Waterloo
bce: Brentford Central
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	stations, err := rail.LoadStations(path)
	require.NoError(t, err)

	assert.Equal(t, "London Waterloo", stations.Name("WAT"))
	assert.Equal(t, "Brentford Central", stations.Name("BCE"), "keys are case-folded")
	assert.Equal(t, "London Waterloo", stations.Name("wat"))
	assert.Equal(t, "XXX", stations.Name("xxx"), "unknown codes fall back to the code")
}

func TestLoadStations_MissingFile(t *testing.T) {
	_, err := rail.LoadStations(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadStations_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("WAT: [broken"), 0o644))

	_, err := rail.LoadStations(path)
	assert.Error(t, err)
}

func TestStationDirectory_NilSafe(t *testing.T) {
	var stations *rail.StationDirectory
	assert.Equal(t, "WAT", stations.Name("wat"))
}
