package topology

import (
	"strings"
	"testing"

	"github.com/arthur-debert/repokit/pkg/codec"
	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
	"github.com/arthur-debert/repokit/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapping(t *testing.T, files []File, path string) *fragment.Mapping {
	t.Helper()
	f, err := Find(files, path)
	require.NoError(t, err)
	m, ok := f.Fragment.(*fragment.Mapping)
	require.True(t, ok, "%s is not a mapping", path)
	return m
}

func value(t *testing.T, m *fragment.Mapping, path ...string) any {
	t.Helper()
	n, ok := m.Lookup(path...)
	require.True(t, ok, "missing %v", path)
	s, ok := n.(fragment.Scalar)
	require.True(t, ok, "%v is not a scalar", path)
	return s.Value()
}

func strs(t *testing.T, m *fragment.Mapping, path ...string) []string {
	t.Helper()
	n, ok := m.Lookup(path...)
	require.True(t, ok, "missing %v", path)
	var out []string
	for _, item := range n.(*fragment.Sequence).Items() {
		out = append(out, item.(fragment.Scalar).Value().(string))
	}
	return out
}

func TestPlanOnePackage(t *testing.T) {
	t.Run("node package", func(t *testing.T) {
		files, err := Plan(OnePackageRepo{Params: templates.Params{PackageName: "@acme/cli"}})
		require.NoError(t, err)

		assert.Equal(t, []string{
			PackageJSONFile, ESLintFile, PrettierFile, WorkflowFile,
			GitignoreFile, TSConfigFile, VitestFile,
		}, Paths(files))

		pkg := mapping(t, files, PackageJSONFile)
		assert.Equal(t, "@acme/cli", value(t, pkg, "name"))
		assert.False(t, pkg.Has("repository"), "no owner, no repository url")

		prettier, err := Find(files, PrettierFile)
		require.NoError(t, err)
		assert.Equal(t, codec.FormatJS, prettier.Format)
		assert.Equal(t, codec.ExportCommonJS, prettier.Options.Module.Style)

		vitest, err := Find(files, VitestFile)
		require.NoError(t, err)
		assert.Equal(t, "defineConfig", vitest.Options.Module.Wrapper)
		assert.Equal(t, []string{"import { defineConfig } from 'vitest/config'"}, vitest.Options.Module.Imports)

		workflow, err := Find(files, WorkflowFile)
		require.NoError(t, err)
		assert.Equal(t, codec.FormatYAML, workflow.Format)

		gitignore, err := Find(files, GitignoreFile)
		require.NoError(t, err)
		assert.Equal(t, codec.FormatLines, gitignore.Format)
	})

	t.Run("browser package adds vite", func(t *testing.T) {
		files, err := Plan(OnePackageRepo{Params: templates.Params{PackageName: "web", Environment: templates.Browser}})
		require.NoError(t, err)
		assert.Contains(t, Paths(files), ViteFile)

		vite, err := Find(files, ViteFile)
		require.NoError(t, err)
		assert.Equal(t, []string{"import { defineConfig } from 'vite'"}, vite.Options.Module.Imports)
	})

	t.Run("every file encodes", func(t *testing.T) {
		files, err := Plan(OnePackageRepo{Params: templates.Params{PackageName: "web", Environment: templates.Browser, Visibility: templates.Public}})
		require.NoError(t, err)
		for _, f := range files {
			out, err := f.Encode()
			require.NoError(t, err, f.Path)
			assert.NotEmpty(t, out, f.Path)
		}
	})
}

func TestPlanMonoRepo(t *testing.T) {
	mono := MonoRepo{
		Params: templates.Params{PackageName: "acme", RepoName: "acme/platform", Visibility: templates.Public},
		Packages: []SubRepo{
			{Dir: "packages/core", Params: templates.Params{PackageName: "@acme/core", Environment: templates.Library, Visibility: templates.Public}},
			{Dir: "packages/web", Params: templates.Params{PackageName: "@acme/web", Environment: templates.Browser}},
			{Dir: "tools/cli", Params: templates.Params{PackageName: "@acme/cli"}},
		},
	}

	files, err := Plan(mono)
	require.NoError(t, err)

	paths := Paths(files)
	assert.Equal(t, []string{PackageJSONFile, TSConfigBaseFile, TSConfigFile}, paths[:3])
	assert.Contains(t, paths, "packages/core/package.json")
	assert.Contains(t, paths, "packages/core/tsconfig.json")
	assert.Contains(t, paths, "packages/web/vite.config.ts")
	assert.NotContains(t, paths, "packages/core/vite.config.ts")
	assert.Contains(t, paths, "tools/cli/vitest.config.ts")

	t.Run("root package.json", func(t *testing.T) {
		root := mapping(t, files, PackageJSONFile)
		assert.Equal(t, true, value(t, root, "private"))
		assert.False(t, root.Has("publishConfig"))
		assert.False(t, root.Has("main"))
		assert.False(t, root.Has("engines"))
		assert.Equal(t, []string{"packages/*", "tools/*"}, strs(t, root, "workspaces"))
		assert.Equal(t, "tsc -b", value(t, root, "scripts", "build"))
		assert.Equal(t, "npm test --workspaces --if-present", value(t, root, "scripts", "test"))
		_, hasStart := root.Lookup("scripts", "start")
		assert.False(t, hasStart)
	})

	t.Run("typescript project references", func(t *testing.T) {
		rootTS := mapping(t, files, TSConfigFile)
		refs, ok := rootTS.Get("references")
		require.True(t, ok)
		assert.True(t, fragment.Equal(fragment.Seq(
			fragment.Obj(fragment.P("path", "./packages/core")),
			fragment.Obj(fragment.P("path", "./packages/web")),
			fragment.Obj(fragment.P("path", "./tools/cli")),
		), refs))

		base := mapping(t, files, TSConfigBaseFile)
		assert.Equal(t, true, value(t, base, "compilerOptions", "composite"))
		_, hasOutDir := base.Lookup("compilerOptions", "outDir")
		assert.False(t, hasOutDir)
	})

	t.Run("eslint ignores package output", func(t *testing.T) {
		eslint := mapping(t, files, ESLintFile)
		assert.Equal(t, []string{"dist", "node_modules", "coverage", "packages/*/dist", "tools/*/dist"}, strs(t, eslint, "ignorePatterns"))
	})

	t.Run("workspace package", func(t *testing.T) {
		core := mapping(t, files, "packages/core/package.json")
		assert.Equal(t, "@acme/core", value(t, core, "name"))
		assert.Equal(t, "packages/core", value(t, core, "repository", "directory"))
		assert.Equal(t, "git+https://github.com/acme/platform.git", value(t, core, "repository", "url"))
		assert.False(t, core.Has("devDependencies"))
		_, hasLint := core.Lookup("scripts", "lint")
		assert.False(t, hasLint)
		assert.True(t, core.Has("publishConfig"))

		ts := mapping(t, files, "packages/core/tsconfig.json")
		assert.Equal(t, "extends", ts.Keys()[0])
		assert.Equal(t, "../../tsconfig.base.json", value(t, ts, "extends"))
		assert.Equal(t, true, value(t, ts, "compilerOptions", "composite"))
	})
}

func TestPlanMonoRepoOutsidePackagesDir(t *testing.T) {
	files, err := Plan(MonoRepo{
		Params:   templates.Params{PackageName: "acme"},
		Packages: []SubRepo{{Dir: "apps/web", Params: templates.Params{PackageName: "@acme/web", Environment: templates.Browser}}},
	})
	require.NoError(t, err)

	root := mapping(t, files, PackageJSONFile)
	assert.Equal(t, []string{"apps/*"}, strs(t, root, "workspaces"))

	eslint := mapping(t, files, ESLintFile)
	ignores := strs(t, eslint, "ignorePatterns")
	assert.Contains(t, ignores, "apps/*/dist")
	assert.NotContains(t, ignores, "packages/*/dist")
}

func TestPlanSubRepo(t *testing.T) {
	files, err := Plan(SubRepo{Dir: "./libs/deep/util", Params: templates.Params{PackageName: "util"}})
	require.NoError(t, err)

	for _, p := range Paths(files) {
		assert.True(t, strings.HasPrefix(p, "libs/deep/util/"), p)
	}
	ts := mapping(t, files, "libs/deep/util/tsconfig.json")
	assert.Equal(t, "../../../tsconfig.base.json", value(t, ts, "extends"))
}

func TestPlanTop(t *testing.T) {
	files, err := Plan(Top{Params: templates.Params{PackageName: "docs", RepoName: "acme/docs", Visibility: templates.Public}})
	require.NoError(t, err)
	assert.Equal(t, []string{PackageJSONFile, PrettierFile, GitignoreFile}, Paths(files))

	pkg := mapping(t, files, PackageJSONFile)
	assert.Equal(t, []string{"name", "version", "license", "repository", "private", "scripts", "devDependencies"}, pkg.Keys())
	assert.Equal(t, true, value(t, pkg, "private"))
	scripts, _ := pkg.Get("scripts")
	assert.Equal(t, []string{"format", "format:check"}, scripts.(*fragment.Mapping).Keys())
	deps, _ := pkg.Get("devDependencies")
	assert.Equal(t, []string{"prettier"}, deps.(*fragment.Mapping).Keys())

	gitignore := mapping(t, files, GitignoreFile)
	assert.Equal(t, []string{"dependencies", "environment", "logs", "editors"}, gitignore.Keys())
}

func TestPlanRejectsInvalidPackages(t *testing.T) {
	tests := []struct {
		name string
		pkg  Package
		code errors.ErrorCode
	}{
		{"nil", nil, errors.ErrTopologyUnknown},
		{"missing name", OnePackageRepo{}, errors.ErrInvalidInput},
		{"bad environment", Top{Params: templates.Params{PackageName: "x", Environment: "deno"}}, errors.ErrInvalidInput},
		{"sub without dir", SubRepo{Params: templates.Params{PackageName: "x"}}, errors.ErrConfigValid},
		{"sub escaping root", SubRepo{Dir: "../x", Params: templates.Params{PackageName: "x"}}, errors.ErrConfigValid},
		{"duplicate dirs", MonoRepo{
			Params: templates.Params{PackageName: "root"},
			Packages: []SubRepo{
				{Dir: "packages/a", Params: templates.Params{PackageName: "a"}},
				{Dir: "packages/a/", Params: templates.Params{PackageName: "b"}},
			},
		}, errors.ErrConfigValid},
		{"duplicate names", MonoRepo{
			Params: templates.Params{PackageName: "root"},
			Packages: []SubRepo{
				{Dir: "packages/a", Params: templates.Params{PackageName: "a"}},
				{Dir: "packages/b", Params: templates.Params{PackageName: "a"}},
			},
		}, errors.ErrConfigValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.pkg)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestFind(t *testing.T) {
	files, err := Plan(OnePackageRepo{Params: templates.Params{PackageName: "x"}})
	require.NoError(t, err)

	f, err := Find(files, "./.github/workflows/ci.yml")
	require.NoError(t, err)
	assert.Equal(t, WorkflowFile, f.Path)

	_, err = Find(files, "Makefile")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileUnknown))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" MonoRepo ")
	require.NoError(t, err)
	assert.Equal(t, KindMonoRepo, k)

	_, err = ParseKind("polyrepo")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTopologyUnknown))
}

func TestParamsOf(t *testing.T) {
	p := templates.Params{PackageName: "x"}
	assert.Equal(t, p, ParamsOf(Top{Params: p}))
	assert.Equal(t, p, ParamsOf(SubRepo{Params: p, Dir: "a"}))
	assert.Equal(t, templates.Params{}, ParamsOf(nil))
}
