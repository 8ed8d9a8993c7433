package dispatcher

import (
	"testing"

	"github.com/arthur-debert/dotbrew/pkg/brew"
	"github.com/arthur-debert/dotbrew/pkg/plugin"
	"github.com/arthur-debert/dotbrew/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	directive string
	items     []string
	defaults  map[string]map[string]interface{}
}

// recordingPlugin handles a fixed set of directives and records every call
// along with the defaults its context carried
type recordingPlugin struct {
	ctx        plugin.Context
	directives []string
	fail       map[string]bool
	calls      *[]call
}

func (p *recordingPlugin) CanHandle(directive string) bool {
	for _, d := range p.directives {
		if d == directive {
			return true
		}
	}
	return false
}

func (p *recordingPlugin) Handle(directive string, items []string) bool {
	*p.calls = append(*p.calls, call{directive: directive, items: items, defaults: p.ctx.Defaults()})
	return !p.fail[directive]
}

func recorder(calls *[]call, fail map[string]bool, directives ...string) Factory {
	return func(ctx plugin.Context) plugin.Plugin {
		return &recordingPlugin{ctx: ctx, directives: directives, fail: fail, calls: calls}
	}
}

func mustParse(t *testing.T, data string) []Task {
	t.Helper()
	tasks, err := ParseTasks([]byte(data))
	require.NoError(t, err)
	return tasks
}

func TestRunDispatchesInOrder(t *testing.T) {
	var calls []call
	d := New(plugin.NewContext("/base", nil), Options{}, recorder(&calls, nil, "tap", "brew"))

	result := d.Run(mustParse(t, `
- tap: [user/repo]
- brew: [git, wget]
`))

	assert.True(t, result.Success)
	require.Len(t, calls, 2)
	assert.Equal(t, "tap", calls[0].directive)
	assert.Equal(t, []string{"git", "wget"}, calls[1].items)
	require.Len(t, result.Tasks, 2)
	assert.True(t, result.Tasks[0].Handled)
	assert.True(t, result.Tasks[1].Success)
}

func TestRunFirstCapablePluginWins(t *testing.T) {
	var first, second []call
	d := New(plugin.NewContext("/base", nil), Options{},
		recorder(&first, nil, "brew"),
		recorder(&second, nil, "brew", "cask"),
	)

	result := d.Run(mustParse(t, "- brew: [git]\n- cask: [firefox]\n"))

	assert.True(t, result.Success)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "cask", second[0].directive)
}

func TestRunDefaultsAffectLaterTasksOnly(t *testing.T) {
	var calls []call
	d := New(plugin.NewContext("/base", map[string]map[string]interface{}{
		"brew": {"stdout": false},
	}), Options{}, recorder(&calls, nil, "brew"))

	result := d.Run(mustParse(t, `
- brew: [before]
- defaults:
    brew:
      stdout: true
- brew: [after]
- defaults:
- brew: [cleared]
`))

	assert.True(t, result.Success)
	require.Len(t, calls, 3)
	assert.Equal(t, false, calls[0].defaults["brew"]["stdout"])
	assert.Equal(t, true, calls[1].defaults["brew"]["stdout"])
	assert.Empty(t, calls[2].defaults)
	assert.Empty(t, d.Context().Defaults())
}

func TestRunUnhandledDirective(t *testing.T) {
	var calls []call
	d := New(plugin.NewContext("/base", nil), Options{}, recorder(&calls, nil, "brew"))

	result := d.Run(mustParse(t, "- link: [x]\n- brew: [git]\n"))

	assert.False(t, result.Success)
	assert.False(t, result.Tasks[0].Handled)
	assert.False(t, result.Tasks[0].Success)
	assert.True(t, result.Tasks[1].Success, "later tasks still run")
	assert.Len(t, calls, 1)
	assert.Len(t, result.Failed(), 1)
}

func TestRunExitOnFailure(t *testing.T) {
	var calls []call
	d := New(plugin.NewContext("/base", nil), Options{ExitOnFailure: true},
		recorder(&calls, map[string]bool{"tap": true}, "tap", "brew"))

	result := d.Run(mustParse(t, "- tap: [user/repo]\n- brew: [git]\n"))

	assert.False(t, result.Success)
	assert.True(t, result.Stopped)
	assert.Len(t, result.Tasks, 1)
	assert.Len(t, calls, 1)
}

func TestRunFilters(t *testing.T) {
	tasks := []Task{
		{Directive: "tap", Items: []string{"user/repo"}},
		{Directive: DirectiveDefaults, Defaults: map[string]map[string]interface{}{"brew": {"stdout": true}}},
		{Directive: "brew", Items: []string{"git"}},
		{Directive: "cask", Items: []string{"firefox"}},
	}

	t.Run("only", func(t *testing.T) {
		var calls []call
		d := New(plugin.NewContext("/base", nil), Options{Only: []string{"brew"}},
			recorder(&calls, nil, "tap", "brew", "cask"))

		result := d.Run(tasks)
		assert.True(t, result.Success)
		require.Len(t, calls, 1)
		assert.Equal(t, "brew", calls[0].directive)
		assert.Equal(t, true, calls[0].defaults["brew"]["stdout"], "defaults apply even when filtered")
		assert.True(t, result.Tasks[0].Skipped)
		assert.True(t, result.Tasks[3].Skipped)
	})

	t.Run("except", func(t *testing.T) {
		var calls []call
		d := New(plugin.NewContext("/base", nil), Options{Except: []string{"brew", "cask"}},
			recorder(&calls, nil, "tap", "brew", "cask"))

		result := d.Run(tasks)
		assert.True(t, result.Success)
		require.Len(t, calls, 1)
		assert.Equal(t, "tap", calls[0].directive)
	})
}

func TestRunWithBrewHandler(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.SetExitCode("brew ls --versions git", 0)
	runner.SetExitCode("arch --x86_64 brew install b", 1)

	d := New(plugin.NewContext("/home/user/dotfiles", nil), Options{},
		func(ctx plugin.Context) plugin.Plugin {
			return brew.NewHandler(ctx, runner, brew.DefaultSettings())
		})

	result := d.Run(mustParse(t, `
- tap: [user/repo]
- brew: [git, jq]
- defaults:
    brew:
      force_intel: true
- brew: [a, b, c]
- brewfile: [Brewfile]
`))

	assert.False(t, result.Success)
	require.Len(t, result.Tasks, 5)
	assert.True(t, result.Tasks[0].Success)
	assert.True(t, result.Tasks[1].Success)
	assert.False(t, result.Tasks[3].Success)
	assert.True(t, result.Tasks[4].Success)

	assert.Equal(t, []string{
		"brew tap user/repo",
		"brew ls --versions git",
		"brew ls --versions jq",
		"brew install jq",
		"brew ls --versions a",
		"arch --x86_64 brew install a",
		"brew ls --versions b",
		"arch --x86_64 brew install b",
		"brew bundle --verbose --file=Brewfile",
	}, runner.Lines())

	for _, cmd := range runner.Commands {
		assert.Equal(t, "/home/user/dotfiles", cmd.Dir)
	}
}
