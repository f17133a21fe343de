package topology

import (
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/repokit/pkg/codec"
	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
	"github.com/arthur-debert/repokit/pkg/logging"
	"github.com/arthur-debert/repokit/pkg/merge"
	"github.com/arthur-debert/repokit/pkg/templates"
)

// File paths produced by Plan, relative to the package directory.
const (
	PackageJSONFile  = "package.json"
	TSConfigFile     = "tsconfig.json"
	TSConfigBaseFile = "tsconfig.base.json"
	ESLintFile       = ".eslintrc.json"
	PrettierFile     = "prettier.config.cjs"
	WorkflowFile     = ".github/workflows/ci.yml"
	VitestFile       = "vitest.config.ts"
	ViteFile         = "vite.config.ts"
	GitignoreFile    = ".gitignore"
)

// GeneratedHeader is written at the top of files that allow comments.
const GeneratedHeader = "Generated by repokit. Edit repokit.toml and regenerate instead."

// File is one planned output.
type File struct {
	Path     string // slash-separated, relative to the repository root
	Format   codec.Format
	Options  codec.Options
	Fragment fragment.Node
}

// Encode renders the file contents.
func (f File) Encode() ([]byte, error) {
	out, err := codec.Encode(f.Format, f.Fragment, f.Options)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncode, "failed to encode %s", f.Path)
	}
	return out, nil
}

// Plan returns the files pkg needs, in a stable order.
func Plan(pkg Package) ([]File, error) {
	logger := logging.GetLogger("topology.plan")

	if err := Validate(pkg); err != nil {
		return nil, err
	}

	var (
		files []File
		err   error
	)
	switch p := pkg.(type) {
	case OnePackageRepo:
		files, err = planOnePackage(p.Params.WithDefaults())
	case MonoRepo:
		files, err = planMonoRepo(p)
	case SubRepo:
		files, err = planSubRepo(p, "")
	case Top:
		files, err = planTop(p.Params.WithDefaults())
	default:
		return nil, errors.Newf(errors.ErrTopologyUnknown, "unknown topology %T", pkg)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("topology", string(pkg.Kind())).
		Int("files", len(files)).
		Msg("Planned files")
	return files, nil
}

// Find returns the planned file at path.
func Find(files []File, filePath string) (File, error) {
	want := path.Clean(strings.TrimPrefix(filePath, "./"))
	for _, f := range files {
		if f.Path == want {
			return f, nil
		}
	}
	return File{}, errors.Newf(errors.ErrFileUnknown, "%q is not generated for this repository", filePath)
}

// Paths lists the paths of files.
func Paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func jsonFile(p string, n fragment.Node) File {
	return File{Path: p, Format: codec.FormatJSON, Fragment: n}
}

func prettierFile(p string, n fragment.Node) File {
	return File{
		Path:     p,
		Format:   codec.FormatJS,
		Fragment: n,
		Options: codec.Options{Module: codec.JSModule{
			Header: []string{GeneratedHeader, "@ts-check"},
			Style:  codec.ExportCommonJS,
		}},
	}
}

func defineConfigFile(p, from string, n fragment.Node) File {
	return File{
		Path:     p,
		Format:   codec.FormatJS,
		Fragment: n,
		Options: codec.Options{Module: codec.JSModule{
			Header:  []string{GeneratedHeader},
			Imports: []string{"import { defineConfig } from '" + from + "'"},
			Wrapper: "defineConfig",
		}},
	}
}

func gitignoreFile(p string, n fragment.Node) File {
	return File{
		Path:     p,
		Format:   codec.FormatLines,
		Fragment: n,
		Options:  codec.Options{Header: []string{GeneratedHeader}},
	}
}

func planOnePackage(p templates.Params) ([]File, error) {
	pkgJSON, err := templates.PackageJSON(p)
	if err != nil {
		return nil, err
	}
	files := []File{jsonFile(PackageJSONFile, pkgJSON)}

	shared, err := sharedFiles(p)
	if err != nil {
		return nil, err
	}
	files = append(files, shared...)

	code, err := codeFiles(p, "")
	if err != nil {
		return nil, err
	}
	return append(files, code...), nil
}

// sharedFiles are the repository-level files of source repositories.
func sharedFiles(p templates.Params) ([]File, error) {
	eslint, err := templates.ESLint(p)
	if err != nil {
		return nil, err
	}
	prettier, err := templates.Prettier(p)
	if err != nil {
		return nil, err
	}
	workflow, err := templates.Workflow(p)
	if err != nil {
		return nil, err
	}
	gitignore, err := templates.Gitignore(p)
	if err != nil {
		return nil, err
	}
	return []File{
		jsonFile(ESLintFile, eslint),
		prettierFile(PrettierFile, prettier),
		{Path: WorkflowFile, Format: codec.FormatYAML, Fragment: workflow},
		gitignoreFile(GitignoreFile, gitignore),
	}, nil
}

// codeFiles are the per-package build and test files. extends, when set,
// is the path of the tsconfig to extend.
func codeFiles(p templates.Params, extends string) ([]File, error) {
	var extra []fragment.Node
	if extends != "" {
		extra = append(extra, fragment.Obj(
			fragment.P("compilerOptions", fragment.Obj(fragment.P("composite", true))),
		))
	}
	tsconfig, err := templates.Build(templates.NameTSConfig, p, extra...)
	if err != nil {
		return nil, err
	}
	if extends != "" {
		tsconfig = merge.Mappings(fragment.Obj(fragment.P("extends", extends)), tsconfig)
	}

	vitest, err := templates.Vitest(p)
	if err != nil {
		return nil, err
	}

	files := []File{
		jsonFile(TSConfigFile, tsconfig),
		defineConfigFile(VitestFile, "vitest/config", vitest),
	}

	if p.Environment == templates.Browser {
		vite, err := templates.Vite(p)
		if err != nil {
			return nil, err
		}
		files = append(files, defineConfigFile(ViteFile, "vite", vite))
	}
	return files, nil
}

func planMonoRepo(m MonoRepo) ([]File, error) {
	root := m.Params.WithDefaults()
	// The workspace root itself is never published.
	rootParams := root
	rootParams.Visibility = templates.Private

	pkgJSON, err := templates.PackageJSON(rootParams)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"main", "types", "exports", "files", "sideEffects", "engines"} {
		pkgJSON.Delete(key)
	}
	if scripts, ok := pkgJSON.Get("scripts"); ok {
		for _, key := range []string{"start", "dev", "preview"} {
			scripts.(*fragment.Mapping).Delete(key)
		}
	}
	pkgJSON = merge.Mappings(pkgJSON, fragment.Obj(
		fragment.P("workspaces", workspaceGlobs(m.Packages)),
		fragment.P("scripts", fragment.Obj(
			fragment.P("build", "tsc -b"),
			fragment.P("test", "npm test --workspaces --if-present"),
		)),
	))

	base, err := templates.TSConfig(root)
	if err != nil {
		return nil, err
	}
	baseOptions, _ := base.Get("compilerOptions")
	baseTS := merge.Mappings(
		fragment.Obj(fragment.P("compilerOptions", baseOptions)),
		fragment.Obj(fragment.P("compilerOptions", fragment.Obj(fragment.P("composite", true)))),
	)
	if opts, ok := baseTS.Get("compilerOptions"); ok {
		// output layout is per package
		opts.(*fragment.Mapping).Delete("outDir")
		opts.(*fragment.Mapping).Delete("rootDir")
	}

	refs := fragment.NewSequence()
	for _, sub := range m.Packages {
		refs.Append(fragment.Obj(fragment.P("path", "./"+path.Clean(sub.Dir))))
	}
	rootTS := fragment.Obj(
		fragment.P("files", fragment.Seq()),
		fragment.P("references", refs),
	)

	files := []File{
		jsonFile(PackageJSONFile, pkgJSON),
		jsonFile(TSConfigBaseFile, baseTS),
		jsonFile(TSConfigFile, rootTS),
	}

	shared, err := sharedFiles(root)
	if err != nil {
		return nil, err
	}
	var distGlobs []string
	for _, glob := range workspacePatterns(m.Packages) {
		distGlobs = append(distGlobs, glob+"/dist")
	}
	for i := range shared {
		if shared[i].Path == ESLintFile {
			shared[i].Fragment = merge.Merge(shared[i].Fragment, fragment.Obj(
				fragment.P("ignorePatterns", fragment.Strings(distGlobs...)),
			))
		}
	}
	files = append(files, shared...)

	for _, sub := range m.Packages {
		subFiles, err := planSubRepo(sub, root.RepoName)
		if err != nil {
			return nil, err
		}
		files = append(files, subFiles...)
	}
	return files, nil
}

// planSubRepo plans a workspace package. Paths are prefixed with its Dir.
func planSubRepo(s SubRepo, rootRepo string) ([]File, error) {
	p := s.Params
	if p.RepoName == "" && rootRepo != "" {
		p.RepoName = rootRepo
	}
	p = p.WithDefaults()
	dir := path.Clean(s.Dir)

	pkgJSON, err := templates.PackageJSON(p)
	if err != nil {
		return nil, err
	}
	// tooling is installed once at the workspace root
	pkgJSON.Delete("devDependencies")
	if scripts, ok := pkgJSON.Get("scripts"); ok {
		for _, key := range []string{"lint", "format", "format:check"} {
			scripts.(*fragment.Mapping).Delete(key)
		}
	}
	if pkgJSON.Has("repository") {
		pkgJSON = merge.Mappings(pkgJSON, fragment.Obj(
			fragment.P("repository", fragment.Obj(fragment.P("directory", dir))),
		))
	}

	code, err := codeFiles(p, relativeRoot(dir)+TSConfigBaseFile)
	if err != nil {
		return nil, err
	}

	files := append([]File{jsonFile(PackageJSONFile, pkgJSON)}, code...)
	for i := range files {
		files[i].Path = path.Join(dir, files[i].Path)
	}
	return files, nil
}

func planTop(p templates.Params) ([]File, error) {
	// A top repository is never published and has no build.
	p.Visibility = templates.Private

	full, err := templates.PackageJSON(p)
	if err != nil {
		return nil, err
	}
	pkgJSON := pick(full, "name", "version", "description", "license", "private", "repository")
	if scripts, ok := full.Get("scripts"); ok {
		pkgJSON.Set("scripts", pick(scripts.(*fragment.Mapping), "format", "format:check"))
	}
	if deps, ok := full.Get("devDependencies"); ok {
		pkgJSON.Set("devDependencies", pick(deps.(*fragment.Mapping), "prettier"))
	}

	prettier, err := templates.Prettier(p)
	if err != nil {
		return nil, err
	}

	gitignore, err := templates.Gitignore(p)
	if err != nil {
		return nil, err
	}
	gitignore = pick(gitignore, "dependencies", "environment", "logs", "editors")

	return []File{
		jsonFile(PackageJSONFile, pkgJSON),
		prettierFile(PrettierFile, prettier),
		gitignoreFile(GitignoreFile, gitignore),
	}, nil
}

// pick copies the listed keys of m, in m's order.
func pick(m *fragment.Mapping, keys ...string) *fragment.Mapping {
	want := map[string]bool{}
	for _, k := range keys {
		want[k] = true
	}
	out := fragment.NewMapping()
	for _, k := range m.Keys() {
		if want[k] {
			v, _ := m.Get(k)
			out.Set(k, fragment.Clone(v))
		}
	}
	return out
}

// workspaceGlobs turns package dirs into npm workspace globs, one per
// parent directory: packages/a, packages/b -> packages/*.
func workspaceGlobs(subs []SubRepo) *fragment.Sequence {
	return fragment.Strings(workspacePatterns(subs)...)
}

// workspacePatterns returns the sorted, distinct parent globs of the
// package dirs: "packages/core" -> "packages/*". Top-level dirs are kept.
func workspacePatterns(subs []SubRepo) []string {
	seen := map[string]bool{}
	var globs []string
	for _, s := range subs {
		dir := path.Clean(s.Dir)
		glob := dir
		if parent := path.Dir(dir); parent != "." {
			glob = parent + "/*"
		}
		if !seen[glob] {
			seen[glob] = true
			globs = append(globs, glob)
		}
	}
	sort.Strings(globs)
	return globs
}

// relativeRoot returns the "../" prefix leading from dir back to the root.
func relativeRoot(dir string) string {
	depth := len(strings.Split(path.Clean(dir), "/"))
	return strings.Repeat("../", depth)
}
