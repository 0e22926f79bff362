package shaders

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

func writeShader(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "mesh.vert", "void main() {}")
	writeShader(t, dir, "mesh.frag", "void main() {}")
	writeShader(t, dir, "notes.txt", "not a shader")

	m, err := NewManager(dir)
	require.NoError(t, err)
	defer m.Close()

	assert.Len(t, m.Names(), 2)

	src, ok := m.Source("mesh.vert")
	require.True(t, ok)
	assert.Equal(t, metadata.ShaderStageVertex, src.Stage)
	assert.Equal(t, []byte("void main() {}"), src.Data)

	_, ok = m.Source("notes.txt")
	assert.False(t, ok)
}

func TestManagerReload(t *testing.T) {
	dir := t.TempDir()
	path := writeShader(t, dir, "post.frag", "// v1")

	m, err := NewManager(dir)
	require.NoError(t, err)
	defer m.Close()

	_, ok := m.NextReload()
	assert.False(t, ok, "no reload pending after startup")

	require.NoError(t, os.WriteFile(path, []byte("// v2"), 0o644))

	require.Eventually(t, func() bool {
		name, ok := m.NextReload()
		return ok && name == "post.frag"
	}, 5*time.Second, 10*time.Millisecond)

	src, ok := m.Source("post.frag")
	require.True(t, ok)
	assert.Equal(t, []byte("// v2"), src.Data)
}

func TestManagerTracksNewFiles(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	defer m.Close()

	writeShader(t, dir, "cull.comp", "void main() {}")

	require.Eventually(t, func() bool {
		_, ok := m.Source("cull.comp")
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	src, _ := m.Source("cull.comp")
	assert.Equal(t, metadata.ShaderStageCompute, src.Stage)
}

func TestStageForFile(t *testing.T) {
	cases := map[string]metadata.ShaderStage{
		"a.vert": metadata.ShaderStageVertex,
		"a.frag": metadata.ShaderStageFragment,
		"a.comp": metadata.ShaderStageCompute,
		"a.mesh": metadata.ShaderStageMesh,
		"a.task": metadata.ShaderStageTask,
	}
	for name, want := range cases {
		stage, ok := stageForFile(name)
		require.True(t, ok, name)
		assert.Equal(t, want, stage)
	}
	_, ok := stageForFile("a.glsl.bak")
	assert.False(t, ok)
}
