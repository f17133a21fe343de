package templates

import (
	"fmt"
	"regexp"
	"strings"

	"dario.cat/mergo"

	"github.com/arthur-debert/repokit/pkg/errors"
)

// Visibility controls whether a package is published.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// ParseVisibility accepts "public" or "private" in any case.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(s))); v {
	case Public, Private:
		return v, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown visibility %q (want public or private)", s)
}

func (v Visibility) String() string { return string(v) }

// Environment is the runtime a package targets.
type Environment string

const (
	Node    Environment = "node"
	Library Environment = "library"
	Browser Environment = "browser"
)

// ParseEnvironment accepts "node", "library" or "browser" in any case.
func ParseEnvironment(s string) (Environment, error) {
	switch e := Environment(strings.ToLower(strings.TrimSpace(s))); e {
	case Node, Library, Browser:
		return e, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown environment %q (want node, library or browser)", s)
}

func (e Environment) String() string { return string(e) }

// Params is the repository metadata every template is rendered with.
type Params struct {
	PackageName string
	RepoName    string // "owner/name" on GitHub
	Description string
	Visibility  Visibility
	Environment Environment
	NodeVersion string
	License     string
}

// Defaults are applied by WithDefaults to empty fields.
var Defaults = Params{
	Visibility:  Private,
	Environment: Node,
	NodeVersion: "20",
	License:     "MIT",
}

var (
	nodeVersionPattern = regexp.MustCompile(`^\d+(\.\d+){0,2}$`)
	repoNamePattern    = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
)

// WithDefaults returns a copy of p with empty fields filled in. RepoName has
// no default: without an owner there is no repository URL to write.
func (p Params) WithDefaults() Params {
	out := p
	defaults := Defaults
	// mergo only fills zero-valued fields without the override option.
	if err := mergo.Merge(&out, defaults); err != nil {
		panic(fmt.Sprintf("templates: merging defaults: %v", err))
	}
	return out
}

// NodeMajor is the major part of NodeVersion: "20.11.1" -> "20".
func (p Params) NodeMajor() string {
	major, _, _ := strings.Cut(p.NodeVersion, ".")
	return major
}

// Validate checks the fields templates rely on.
func (p Params) Validate() error {
	if strings.TrimSpace(p.PackageName) == "" {
		return errors.New(errors.ErrInvalidInput, "package name is required")
	}
	if _, err := ParseVisibility(string(p.Visibility)); err != nil {
		return err
	}
	if _, err := ParseEnvironment(string(p.Environment)); err != nil {
		return err
	}
	if !nodeVersionPattern.MatchString(p.NodeVersion) {
		return errors.Newf(errors.ErrInvalidInput, "node version %q is not MAJOR[.MINOR[.PATCH]]", p.NodeVersion)
	}
	if p.RepoName != "" && !repoNamePattern.MatchString(p.RepoName) {
		return errors.Newf(errors.ErrInvalidInput, "repository %q is not owner/name", p.RepoName)
	}
	return nil
}

// UnscopedName strips an npm scope: "@acme/widgets" -> "widgets".
func UnscopedName(name string) string {
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			return name[i+1:]
		}
	}
	return name
}
