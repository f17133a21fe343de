package config

import (
	"path"
	"strings"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/templates"
	"github.com/arthur-debert/repokit/pkg/topology"
)

// Config mirrors repokit.toml.
type Config struct {
	Name        string `koanf:"name" toml:"name"`
	Repo        string `koanf:"repo" toml:"repo,omitempty"`
	Description string `koanf:"description" toml:"description,omitempty"`
	Topology    string `koanf:"topology" toml:"topology"`
	Visibility  string `koanf:"visibility" toml:"visibility"`
	Environment string `koanf:"environment" toml:"environment"`
	NodeVersion string `koanf:"node_version" toml:"node_version"`
	License     string `koanf:"license" toml:"license"`
	// Dir places a sub-package inside its monorepo, e.g. "packages/core".
	Dir      string          `koanf:"dir" toml:"dir,omitempty"`
	Packages []PackageConfig `koanf:"packages" toml:"packages,omitempty"`

	// Source is the file the config was read from, empty when none.
	Source string `koanf:"-" toml:"-"`
}

// PackageConfig is one [[packages]] entry of a monorepo.
type PackageConfig struct {
	Name        string `koanf:"name" toml:"name"`
	Dir         string `koanf:"dir" toml:"dir"`
	Description string `koanf:"description" toml:"description,omitempty"`
	Environment string `koanf:"environment" toml:"environment,omitempty"`
	Visibility  string `koanf:"visibility" toml:"visibility,omitempty"`
}

// Validate checks the fields that do not depend on the template layer.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New(errors.ErrConfigValid, "name is required").
			WithDetail("source", c.Source)
	}
	kind, err := topology.ParseKind(c.Topology)
	if err != nil {
		return err
	}
	if _, err := templates.ParseVisibility(c.Visibility); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid visibility")
	}
	if _, err := templates.ParseEnvironment(c.Environment); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid environment")
	}
	if kind != topology.KindMonoRepo && len(c.Packages) > 0 {
		return errors.Newf(errors.ErrConfigValid, "packages are only allowed with topology %q", topology.KindMonoRepo)
	}
	if kind == topology.KindSubRepo && strings.TrimSpace(c.Dir) == "" {
		return errors.New(errors.ErrConfigValid, "a sub-package needs dir")
	}
	for i, p := range c.Packages {
		if strings.TrimSpace(p.Name) == "" {
			return errors.Newf(errors.ErrConfigValid, "packages[%d]: name is required", i)
		}
	}
	return nil
}

// ToPackage builds the topology described by c.
func (c *Config) ToPackage() (topology.Package, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	root, err := c.params()
	if err != nil {
		return nil, err
	}

	kind, _ := topology.ParseKind(c.Topology)
	switch kind {
	case topology.KindOnePackage:
		return topology.OnePackageRepo{Params: root}, nil
	case topology.KindTop:
		return topology.Top{Params: root}, nil
	case topology.KindSubRepo:
		return topology.SubRepo{Params: root, Dir: strings.TrimSpace(c.Dir)}, nil
	case topology.KindMonoRepo:
		mono := topology.MonoRepo{Params: root}
		for _, pc := range c.Packages {
			sub, err := c.subPackage(root, pc)
			if err != nil {
				return nil, err
			}
			mono.Packages = append(mono.Packages, sub)
		}
		return mono, nil
	}
	return nil, errors.Newf(errors.ErrTopologyUnknown, "unknown topology %q", c.Topology)
}

func (c *Config) params() (templates.Params, error) {
	vis, err := templates.ParseVisibility(c.Visibility)
	if err != nil {
		return templates.Params{}, err
	}
	env, err := templates.ParseEnvironment(c.Environment)
	if err != nil {
		return templates.Params{}, err
	}
	return templates.Params{
		PackageName: c.Name,
		RepoName:    c.Repo,
		Description: c.Description,
		Visibility:  vis,
		Environment: env,
		NodeVersion: c.NodeVersion,
		License:     c.License,
	}, nil
}

func (c *Config) subPackage(root templates.Params, pc PackageConfig) (topology.SubRepo, error) {
	p := root
	p.PackageName = pc.Name
	p.Description = pc.Description
	if pc.Visibility != "" {
		vis, err := templates.ParseVisibility(pc.Visibility)
		if err != nil {
			return topology.SubRepo{}, errors.Wrapf(err, errors.ErrConfigValid, "package %q", pc.Name)
		}
		p.Visibility = vis
	}
	if pc.Environment != "" {
		env, err := templates.ParseEnvironment(pc.Environment)
		if err != nil {
			return topology.SubRepo{}, errors.Wrapf(err, errors.ErrConfigValid, "package %q", pc.Name)
		}
		p.Environment = env
	}

	dir := pc.Dir
	if dir == "" {
		dir = path.Join("packages", templates.UnscopedName(pc.Name))
	}
	return topology.SubRepo{Params: p, Dir: dir}, nil
}
