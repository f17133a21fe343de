package main

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, fsys filesystem.FS, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd(fsys)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRemovesPaths(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, filesystem.WriteFile(fsys, "/repo/dist/index.js", []byte("x")))
	require.NoError(t, filesystem.WriteFile(fsys, "/repo/coverage/lcov.info", []byte("x")))

	out, err := run(t, fsys, "/repo/dist", "/repo/coverage", "/repo/missing")
	require.NoError(t, err)
	assert.Equal(t, "removed /repo/dist\nremoved /repo/coverage\n", out)

	for _, p := range []string{"/repo/dist", "/repo/coverage"} {
		exists, err := filesystem.Exists(fsys, p)
		require.NoError(t, err)
		assert.False(t, exists, p)
	}
}

func TestQuiet(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, filesystem.WriteFile(fsys, "/repo/dist/index.js", []byte("x")))

	out, err := run(t, fsys, "-q", "/repo/dist")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRequiresAPath(t *testing.T) {
	_, err := run(t, filesystem.NewMemory())
	assert.Error(t, err)
}

func TestReportsFailures(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/repo/dist/a.js", []byte("x"), 0644))

	_, err := run(t, filesystem.NewAferoFS(afero.NewReadOnlyFs(base)), "/repo/dist")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRemove))
}
