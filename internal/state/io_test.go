package state_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/washpanel/internal/state"
)

func TestMockFullReader(t *testing.T) {
	t.Parallel()

	fs := state.NewMockFullReader(map[string]string{
		"a":       "1",
		"dir/b":   "2",
		"./empty": "",
	})
	b, err := fs.ReadAll(fs.Normalize("./a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(b))
	b, err = fs.ReadAll(fs.Normalize("dir/../dir/b"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(b))
	b, err = fs.ReadAll(fs.Normalize("empty"))
	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.Len(t, b, 0)

	b, err = fs.ReadAll("missing")
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestOsFullReaderNormalize(t *testing.T) {
	t.Parallel()

	fs := state.NewOsFullReader()
	fs.SetBase("/etc/washpanel")
	assert.Equal(t, "/etc/washpanel/local.hcl", fs.Normalize("local.hcl"))
	assert.Equal(t, "/etc/other.hcl", fs.Normalize("../other.hcl"))
	assert.Equal(t, "/tmp/x.hcl", fs.Normalize("/tmp//x.hcl"))

	b, err := fs.ReadAll(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.NoError(t, err)
	assert.Nil(t, b)
}
