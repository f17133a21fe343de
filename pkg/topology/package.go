package topology

import (
	"path"
	"strings"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/templates"
)

// Kind names a topology in config files and on the command line.
type Kind string

const (
	KindOnePackage Kind = "one-package"
	KindMonoRepo   Kind = "monorepo"
	KindSubRepo    Kind = "sub-package"
	KindTop        Kind = "top"
)

// Kinds lists every topology kind.
var Kinds = []Kind{KindOnePackage, KindMonoRepo, KindSubRepo, KindTop}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.Newf(errors.ErrTopologyUnknown, "unknown topology %q", s)
}

// Package is one of OnePackageRepo, MonoRepo, SubRepo or Top.
type Package interface {
	Kind() Kind
	isPackage()
}

// OnePackageRepo is a repository holding a single package.
type OnePackageRepo struct {
	Params templates.Params
}

// MonoRepo is the root of a workspace repository.
type MonoRepo struct {
	Params   templates.Params
	Packages []SubRepo
}

// SubRepo is a workspace package. Dir is slash-separated and relative to the
// monorepo root, e.g. "packages/core".
type SubRepo struct {
	Params templates.Params
	Dir    string
}

// Top is a repository without sources: docs, infrastructure, meta repos.
type Top struct {
	Params templates.Params
}

func (OnePackageRepo) Kind() Kind { return KindOnePackage }
func (MonoRepo) Kind() Kind       { return KindMonoRepo }
func (SubRepo) Kind() Kind        { return KindSubRepo }
func (Top) Kind() Kind            { return KindTop }

func (OnePackageRepo) isPackage() {}
func (MonoRepo) isPackage()       {}
func (SubRepo) isPackage()        {}
func (Top) isPackage()            {}

// ParamsOf returns the template parameters of any package.
func ParamsOf(pkg Package) templates.Params {
	switch p := pkg.(type) {
	case OnePackageRepo:
		return p.Params
	case MonoRepo:
		return p.Params
	case SubRepo:
		return p.Params
	case Top:
		return p.Params
	}
	return templates.Params{}
}

// Validate checks a package and, for a MonoRepo, every workspace package.
func Validate(pkg Package) error {
	switch p := pkg.(type) {
	case OnePackageRepo:
		return p.Params.WithDefaults().Validate()
	case Top:
		return p.Params.WithDefaults().Validate()
	case SubRepo:
		if err := p.Params.WithDefaults().Validate(); err != nil {
			return err
		}
		return validateDir(p.Dir)
	case MonoRepo:
		if err := p.Params.WithDefaults().Validate(); err != nil {
			return err
		}
		dirs := map[string]bool{}
		names := map[string]bool{}
		for _, sub := range p.Packages {
			if err := Validate(sub); err != nil {
				return errors.Wrapf(err, errors.ErrConfigValid, "workspace package %q", sub.Params.PackageName)
			}
			dir := path.Clean(sub.Dir)
			if dirs[dir] {
				return errors.Newf(errors.ErrConfigValid, "two workspace packages live in %q", dir)
			}
			if names[sub.Params.PackageName] {
				return errors.Newf(errors.ErrConfigValid, "workspace package name %q is used twice", sub.Params.PackageName)
			}
			dirs[dir] = true
			names[sub.Params.PackageName] = true
		}
		return nil
	case nil:
		return errors.New(errors.ErrTopologyUnknown, "no topology given")
	}
	return errors.Newf(errors.ErrTopologyUnknown, "unknown topology %T", pkg)
}

func validateDir(dir string) error {
	if dir == "" {
		return errors.New(errors.ErrConfigValid, "workspace package directory is required")
	}
	clean := path.Clean(dir)
	if path.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Newf(errors.ErrConfigValid, "workspace package directory %q must stay inside the repository", dir)
	}
	return nil
}
