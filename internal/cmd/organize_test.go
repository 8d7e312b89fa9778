package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizeCommandAll(t *testing.T) {
	chdir(t, t.TempDir())

	target := t.TempDir()
	buildTree(t, target, map[string]string{
		"report.pdf":  "doc",
		"photo.jpg":   "img",
		"mystery.xyz": "???",
	})

	cmd := NewOrganizeCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{target, "--all"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "moved 2 of 2 file(s), 0 failed")

	_, err := os.Stat(filepath.Join(target, "Documents", "report.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, "Images", "photo.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, "mystery.xyz"))
	assert.NoError(t, err, "unknown-category file is never moved")
}

func TestOrganizeCommandByName(t *testing.T) {
	chdir(t, t.TempDir())

	target := t.TempDir()
	buildTree(t, target, map[string]string{
		"a.pdf": "doc a",
		"b.pdf": "doc b",
	})

	cmd := NewOrganizeCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{target, "a.pdf"})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(target, "Documents", "a.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, "b.pdf"))
	assert.NoError(t, err, "unselected file stays put")
}

func TestOrganizeCommandDifferentDest(t *testing.T) {
	chdir(t, t.TempDir())

	target := t.TempDir()
	destDir := t.TempDir()
	buildTree(t, target, map[string]string{"a.pdf": "doc"})

	cmd := NewOrganizeCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{target, "--all", "--dest", destDir})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(destDir, "Documents", "a.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, "a.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestOrganizeCommandRequiresSelection(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewOrganizeCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{t.TempDir()})

	assert.Error(t, cmd.Execute())
}
