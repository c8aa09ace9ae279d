package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/zoomkit/internal/crop"
	"github.com/frudas24/zoomkit/internal/geom"
)

func sample() crop.Result {
	return crop.Result{
		Width: 100, Height: 50, OriginX: 10, OriginY: 20,
		Context: crop.Context{RotationAngle: 1.5, FlipHorizontal: true},
		Output:  geom.Sz(100.0, 50.0),
		Factor:  1,
	}
}

// TestLoad_Missing verifies a missing file yields empty data.
func TestLoad_Missing(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Empty(t, d)
}

// TestLoad_Invalid verifies malformed JSON is rejected.
func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

// TestStore_PutPersists verifies entries survive reopening the store.
func TestStore_PutPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "crops.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("b", Entry{Profile: "default", Result: sample()}))
	require.NoError(t, s.Put("a", Entry{Result: sample()}))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, reopened.IDs())
	e, ok := reopened.Get("b")
	require.True(t, ok)
	assert.Equal(t, "default", e.Profile)
	assert.Equal(t, sample(), e.Result)

	_, ok = reopened.Get("missing")
	assert.False(t, ok)
}

// TestLoadResult_Missing verifies a missing result file is an error.
func TestLoadResult_Missing(t *testing.T) {
	_, err := LoadResult(filepath.Join(t.TempDir(), "none.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoadResult_Reads verifies a bare result file is decoded.
func TestLoadResult_Reads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crop.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width":40,"height":30,"originX":5,"originY":6,"factor":1}`), 0o600))
	r, err := LoadResult(path)
	require.NoError(t, err)
	assert.Equal(t, 40.0, r.Width)
	assert.Equal(t, 6.0, r.OriginY)
}
