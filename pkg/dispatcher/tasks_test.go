package dispatcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTasks(t *testing.T) {
	data := []byte(`
- defaults:
    brew:
      stdout: true
      force_intel: "false"
    tap: ~
- tap: [user/repo, "other/repo https://example.com/other.git"]
- brew:
    - git
    - group/tap/pkgname --HEAD
  cask: firefox
- brewfile:
`)

	tasks, err := ParseTasks(data)
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	assert.Equal(t, DirectiveDefaults, tasks[0].Directive)
	assert.Equal(t, map[string]map[string]interface{}{
		"brew": {"stdout": true, "force_intel": "false"},
		"tap":  {},
	}, tasks[0].Defaults)
	assert.Nil(t, tasks[0].Items)

	assert.Equal(t, "tap", tasks[1].Directive)
	assert.Equal(t, []string{"user/repo", "other/repo https://example.com/other.git"}, tasks[1].Items)

	assert.Equal(t, "brew", tasks[2].Directive)
	assert.Equal(t, []string{"git", "group/tap/pkgname --HEAD"}, tasks[2].Items)

	assert.Equal(t, "cask", tasks[3].Directive, "keys of one mapping keep file order")
	assert.Equal(t, []string{"firefox"}, tasks[3].Items)
	assert.Equal(t, tasks[2].Line+3, tasks[3].Line)

	assert.Equal(t, "brewfile", tasks[4].Directive)
	assert.Empty(t, tasks[4].Items)
}

func TestParseTasksEmpty(t *testing.T) {
	for _, data := range []string{"", "\n", "~", "[]"} {
		tasks, err := ParseTasks([]byte(data))
		require.NoError(t, err, "%q", data)
		assert.Empty(t, tasks)
	}
}

func TestParseTasksErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "- brew: [git"},
		{"top level mapping", "brew: [git]"},
		{"entry not a mapping", "- git"},
		{"nested list item", "- brew:\n    - [git]"},
		{"mapping data", "- brew:\n    git: true"},
		{"defaults not a mapping", "- defaults: [brew]"},
		{"directive defaults not a mapping", "- defaults:\n    brew: true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTasks([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrTaskFile), "got %v", err)
		})
	}
}

func TestLoadTasks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "install.conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- brew: [git]\n"), 0644))

	tasks, err := LoadTasks(path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, []string{"git"}, tasks[0].Items)

	_, err = LoadTasks(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTaskFile))
	assert.Equal(t, filepath.Join(dir, "missing.yaml"), errors.GetErrorDetails(err)["path"])
}
