package display

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *dispatcher.Result {
	return &dispatcher.Result{
		Success: false,
		Tasks: []dispatcher.TaskResult{
			{Directive: "tap", Items: []string{"user/repo"}, Handled: true, Success: true, Duration: 2 * time.Second},
			{Directive: dispatcher.DirectiveDefaults, Handled: true, Success: true},
			{Directive: "brew", Items: []string{"git", "wget"}, Handled: true, Success: false},
			{Directive: "cask", Items: []string{"firefox"}, Skipped: true},
			{Directive: "link", Items: []string{"x"}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatAuto},
		{"auto", FormatAuto},
		{"term", FormatTerminal},
		{"terminal", FormatTerminal},
		{"TEXT", FormatText},
		{"plain", FormatText},
		{"json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	assert.Equal(t, "term", FormatTerminal.String())
	assert.Equal(t, "unknown", Format(42).String())
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, FormatText, DetectFormat(os.Stdout))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, FormatText, DetectFormat(f))
	})
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	r, err := NewRenderer(FormatAuto, &buf)
	require.NoError(t, err)
	assert.IsType(t, &TextRenderer{}, r, "non-file writers get text")

	r, err = NewRenderer(FormatTerminal, &buf)
	require.NoError(t, err)
	assert.IsType(t, &TerminalRenderer{}, r)

	r, err = NewRenderer(FormatJSON, &buf)
	require.NoError(t, err)
	assert.IsType(t, &JSONRenderer{}, r)

	_, err = NewRenderer(Format(42), &buf)
	assert.Error(t, err)
}

func TestTextRenderResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).RenderResult(sampleResult()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Regexp(t, `^ok\s+tap\s+user/repo$`, lines[0])
	assert.Regexp(t, `^failed\s+brew\s+git, wget$`, lines[1])
	assert.Regexp(t, `^skipped\s+cask\s+firefox$`, lines[2])
	assert.Regexp(t, `^unhandled\s+link\s+x$`, lines[3])
	assert.Equal(t, "3 tasks run, 2 failed, 1 skipped", lines[4])
	assert.NotContains(t, out, "defaults")
}

func TestTextRenderStopped(t *testing.T) {
	var buf bytes.Buffer
	result := &dispatcher.Result{
		Tasks:   []dispatcher.TaskResult{{Directive: "brew", Handled: true}},
		Stopped: true,
	}
	require.NoError(t, NewTextRenderer(&buf).RenderResult(result))
	assert.Contains(t, buf.String(), "(stopped on failure)")
}

func TestTextRenderDirectives(t *testing.T) {
	var buf bytes.Buffer
	err := NewTextRenderer(&buf).RenderDirectives([]DirectiveInfo{
		{Name: "brew", Options: map[string]bool{"stdout": false, "auto_bootstrap": false}},
		{Name: "brewfile", Options: map[string]bool{"stdout": true}},
	})
	require.NoError(t, err)
	assert.Regexp(t, `brew\s+auto_bootstrap=false stdout=false`, buf.String())
	assert.Regexp(t, `brewfile\s+stdout=true`, buf.String())
}

func TestTextRenderErrorAndMessage(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)
	require.NoError(t, r.RenderError(errors.New(errors.ErrTaskFile, "bad file")))
	require.NoError(t, r.RenderMessage("Dry run, nothing was installed"))
	assert.Equal(t, "Error: [TASK_FILE] bad file\nDry run, nothing was installed\n", buf.String())
}

func TestTerminalRenderResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalRenderer(&buf).RenderResult(sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Directive")
	assert.Contains(t, out, "user/repo")
	assert.Contains(t, out, "git, wget")
	assert.Contains(t, out, "3 tasks run, 2 failed, 1 skipped")
	assert.NotContains(t, out, "defaults")
}

func TestTerminalRenderDirectives(t *testing.T) {
	var buf bytes.Buffer
	err := NewTerminalRenderer(&buf).RenderDirectives([]DirectiveInfo{
		{Name: "tap", Options: map[string]bool{"force_intel": false}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Directives")
	assert.Contains(t, buf.String(), "force_intel=false")
}

func TestJSONRenderResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf).RenderResult(sampleResult()))

	var decoded struct {
		Success bool `json:"success"`
		Tasks   []struct {
			Directive string   `json:"directive"`
			Items     []string `json:"items"`
			Handled   bool     `json:"handled"`
			Success   bool     `json:"success"`
			Skipped   bool     `json:"skipped"`
			Duration  int64    `json:"duration"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.False(t, decoded.Success)
	require.Len(t, decoded.Tasks, 5)
	assert.Equal(t, "tap", decoded.Tasks[0].Directive)
	assert.Equal(t, int64(2*time.Second), decoded.Tasks[0].Duration)
	assert.True(t, decoded.Tasks[3].Skipped)
}

func TestJSONRenderError(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)

	err := errors.New(errors.ErrConfigValid, "brew.binary must not be empty").WithDetail("key", "brew.binary")
	require.NoError(t, r.RenderError(err))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "CONFIG_INVALID", decoded["code"])
	assert.Equal(t, map[string]interface{}{"key": "brew.binary"}, decoded["details"])

	buf.Reset()
	require.NoError(t, r.RenderError(assert.AnError))
	decoded = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotContains(t, decoded, "code")
}
