package brew

import (
	"strings"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"github.com/kballard/go-shellquote"
)

// PackageSpec is a parsed package item such as "user/tap/pkg --HEAD"
type PackageSpec struct {
	// Raw is the item as written in the configuration
	Raw string

	// Name is the bare package name used for presence checks
	Name string

	// Args are the words passed to brew install
	Args []string
}

// ParsePackageSpec splits a package item into its install arguments and
// derives the bare name: the first word, after its last "/".
func ParsePackageSpec(raw string) (PackageSpec, error) {
	args, err := splitItem(raw)
	if err != nil {
		return PackageSpec{}, err
	}

	first := args[0]
	name := first[strings.LastIndex(first, "/")+1:]
	if name == "" {
		return PackageSpec{}, errors.Newf(errors.ErrMalformedSpec, "no package name in %q", raw).
			WithDetail("package", raw)
	}

	return PackageSpec{Raw: raw, Name: name, Args: args}, nil
}

// splitItem splits an item with shell word rules, rejecting blank items
func splitItem(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New(errors.ErrBlankPackage, "cannot process blank item")
	}

	args, err := shellquote.Split(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMalformedSpec, "cannot parse %q", raw).
			WithDetail("package", raw)
	}
	if len(args) == 0 || args[0] == "" {
		return nil, errors.New(errors.ErrBlankPackage, "cannot process blank item")
	}

	return args, nil
}
