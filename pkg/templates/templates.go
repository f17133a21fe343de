// Package templates holds the configuration fragments repokit composes.
//
// Each template is an embedded YAML file rendered with Params and split into
// layers: a base, one overlay per Environment, one per Visibility. A factory
// merges the layers that apply, in that order, and returns a fresh tree.
// Nothing here keeps state between calls.
package templates

import (
	"github.com/arthur-debert/repokit/pkg/fragment"
	"github.com/arthur-debert/repokit/pkg/logging"
	"github.com/arthur-debert/repokit/pkg/merge"
)

// Template names, matching the embedded file names.
const (
	NamePackage   = "package"
	NameTSConfig  = "tsconfig"
	NameESLint    = "eslint"
	NamePrettier  = "prettier"
	NameWorkflow  = "workflow"
	NameVitest    = "vitest"
	NameVite      = "vite"
	NameGitignore = "gitignore"
)

// Build renders the named template for p and merges its layers, followed by
// any extra fragments the caller supplies.
func Build(name string, p Params, extra ...fragment.Node) (*fragment.Mapping, error) {
	logger := logging.GetLogger("templates")

	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	l, err := load(name, p)
	if err != nil {
		return nil, err
	}

	stack := append(l.stack(p), extra...)
	logger.Trace().
		Str("template", name).
		Str("environment", p.Environment.String()).
		Str("visibility", p.Visibility.String()).
		Int("layers", len(stack)).
		Msg("Building template")

	out, ok := merge.Merge(stack...).(*fragment.Mapping)
	if !ok {
		// a non-mapping extra replaced the whole tree
		return fragment.NewMapping(), nil
	}
	return out, nil
}

// PackageJSON builds package.json.
func PackageJSON(p Params) (*fragment.Mapping, error) { return Build(NamePackage, p) }

// TSConfig builds tsconfig.json.
func TSConfig(p Params) (*fragment.Mapping, error) { return Build(NameTSConfig, p) }

// ESLint builds .eslintrc.json.
func ESLint(p Params) (*fragment.Mapping, error) { return Build(NameESLint, p) }

// Prettier builds the prettier options object.
func Prettier(p Params) (*fragment.Mapping, error) { return Build(NamePrettier, p) }

// Workflow builds the GitHub Actions CI workflow.
func Workflow(p Params) (*fragment.Mapping, error) { return Build(NameWorkflow, p) }

// Vitest builds the object passed to vitest's defineConfig.
func Vitest(p Params) (*fragment.Mapping, error) { return Build(NameVitest, p) }

// Vite builds the object passed to vite's defineConfig.
func Vite(p Params) (*fragment.Mapping, error) { return Build(NameVite, p) }

// Gitignore builds .gitignore as a mapping of section name to patterns.
func Gitignore(p Params) (*fragment.Mapping, error) { return Build(NameGitignore, p) }
