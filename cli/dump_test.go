package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump_Opening(t *testing.T) {
	out, err := execute(t, "dump", "--limit", "7")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"0\tprogram ch=1 prog=0",
		"0\tprogram ch=2 prog=0",
		"0\tall-sound-off ch=1",
		"0\tnote-on ch=1 key=79 vel=64",
		"0\tall-sound-off ch=2",
		"0\tnote-on ch=2 key=38 vel=64",
		"0\tactive-sensing",
	}, "\n")+"\n", out)
}

func TestDump_Reproducible(t *testing.T) {
	a, err := execute(t, "dump", "--limit", "300")
	require.NoError(t, err)
	b, err := execute(t, "dump", "--limit", "300")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := execute(t, "dump", "--limit", "300", "--seed", "paper lantern")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestDump_WholeBoundedPiece(t *testing.T) {
	out, err := execute(t, "dump", "--phrases", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "all-sound-off ch=2", strings.SplitN(lines[len(lines)-1], "\t", 2)[1])
}

func TestDump_EndlessNeedsLimit(t *testing.T) {
	_, err := execute(t, "dump", "--phrases", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "endless")
}

func TestDump_NegativeLimit(t *testing.T) {
	_, err := execute(t, "dump", "--limit", "-1")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDump_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("beat: 0s\n"), 0644))

	_, err := execute(t, "--config", path, "dump", "--limit", "3")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "beat")
}

func TestDump_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "dump", "--limit", "3")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
