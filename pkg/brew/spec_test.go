package brew

import (
	"testing"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageSpec(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantArgs []string
	}{
		{"bare name", "wget", "wget", []string{"wget"}},
		{"tap qualified with flag", "group/tap/pkgname --HEAD", "pkgname", []string{"group/tap/pkgname", "--HEAD"}},
		{"surrounding space", "  git  ", "git", []string{"git"}},
		{"several flags", "python@3.12 --build-from-source --force", "python@3.12", []string{"python@3.12", "--build-from-source", "--force"}},
		{"quoted flag value", `neovim --with-option="a b"`, "neovim", []string{"neovim", "--with-option=a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParsePackageSpec(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, spec.Raw)
			assert.Equal(t, tt.wantName, spec.Name)
			assert.Equal(t, tt.wantArgs, spec.Args)
		})
	}
}

func TestParsePackageSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code errors.ErrorCode
	}{
		{"empty", "", errors.ErrBlankPackage},
		{"whitespace", "   ", errors.ErrBlankPackage},
		{"empty quotes", "''", errors.ErrBlankPackage},
		{"unterminated quote", `"wget`, errors.ErrMalformedSpec},
		{"trailing slash", "user/tap/", errors.ErrMalformedSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackageSpec(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParseDirective(t *testing.T) {
	for _, d := range Directives() {
		got, ok := ParseDirective(string(d))
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	for _, name := range []string{"", "Brew", "link", "shell", "install"} {
		_, ok := ParseDirective(name)
		assert.False(t, ok, name)
	}

	assert.Len(t, Directives(), 5)
}
