package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, titleCase(tc.input))
		})
	}
}

func TestBuiltinsAreBuildable(t *testing.T) {
	infos := Builtins()
	require.NotEmpty(t, infos)

	for _, info := range infos {
		t.Run(info.ID, func(t *testing.T) {
			s, err := ByName(info.ID, 11)
			require.NoError(t, err)
			assert.NoError(t, s.Validate())
			assert.Equal(t, int64(11), s.SamplingConfig.Seed)
			assert.Equal(t, "builtin", info.Type)
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("cornell-box", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownScene))
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glass-row.yaml"), []byte("name: Glass Row\ndescription: three glass balls\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "another_one.yml"), []byte("spheres: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	scenes, err := ListSceneFiles(dir)
	require.NoError(t, err)
	require.Len(t, scenes, 2)

	assert.Equal(t, "Another One", scenes[0].Name)
	assert.Equal(t, "Glass Row", scenes[1].Name)
	assert.Equal(t, "three glass balls", scenes[1].Description)
	assert.Equal(t, "file", scenes[1].Type)
}

func TestListSceneFilesMissingDir(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, scenes)
}
