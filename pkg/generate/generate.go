// Package generate writes the planned configuration files of a repository.
package generate

import (
	"path"
	"path/filepath"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/filesystem"
	"github.com/arthur-debert/repokit/pkg/logging"
	"github.com/arthur-debert/repokit/pkg/topology"
)

// Options configures a Generate run.
type Options struct {
	Root    string
	Package topology.Package
	// Only restricts the run to these relative paths. Empty means all.
	Only   []string
	DryRun bool
	Force  bool
	FS     filesystem.FS
}

// Status is what happened to one file.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusPlanned Status = "planned"
)

// FileResult reports one file.
type FileResult struct {
	Path   string // relative, slash-separated
	Target string // on disk
	Status Status
	Size   int
}

// Result lists every file touched or considered, in plan order.
type Result struct {
	Files []FileResult
}

// Count returns the number of files with status s.
func (r *Result) Count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Generate plans, encodes and writes files. Writes happen one at a time and
// the first failure aborts the run; the partial Result is returned with it.
func Generate(opts Options) (*Result, error) {
	logger := logging.GetLogger("generate")
	defer logging.LogOperationStart(logger, "generate")()
	logger.Debug().
		Str("root", opts.Root).
		Bool("dry_run", opts.DryRun).
		Bool("force", opts.Force).
		Msg("Generating")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	files, err := selectFiles(opts.Package, opts.Only)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, f := range files {
		target := filepath.Join(opts.Root, filepath.FromSlash(f.Path))
		fr := FileResult{Path: f.Path, Target: target}

		content, err := f.Encode()
		if err != nil {
			return result, err
		}
		fr.Size = len(content)

		exists, err := filesystem.Exists(fsys, target)
		if err != nil {
			return result, err
		}

		switch {
		case exists && !opts.Force:
			fr.Status = StatusSkipped
			logger.Info().Str("path", f.Path).Msg("Exists, skipping")
		case opts.DryRun:
			fr.Status = StatusPlanned
			logger.Debug().Str("path", f.Path).Msg("Dry run, not writing")
		default:
			if err := filesystem.WriteFile(fsys, target, content); err != nil {
				result.Files = append(result.Files, fr)
				return result, errors.Wrapf(err, errors.ErrFileWrite, "generating %s", f.Path).
					WithDetail("path", target)
			}
			fr.Status = StatusWritten
			logger.Info().Str("path", f.Path).Int("bytes", len(content)).Msg("Wrote")
		}
		result.Files = append(result.Files, fr)
	}

	logger.Info().
		Int("written", result.Count(StatusWritten)).
		Int("skipped", result.Count(StatusSkipped)).
		Int("planned", result.Count(StatusPlanned)).
		Msg("Generate finished")
	return result, nil
}

// Render returns the content of one planned file.
func Render(pkg topology.Package, filePath string) ([]byte, error) {
	files, err := topology.Plan(pkg)
	if err != nil {
		return nil, err
	}
	f, err := topology.Find(files, filePath)
	if err != nil {
		return nil, err
	}
	return f.Encode()
}

func selectFiles(pkg topology.Package, only []string) ([]topology.File, error) {
	files, err := topology.Plan(pkg)
	if err != nil {
		return nil, err
	}
	if len(only) == 0 {
		return files, nil
	}

	selected := make([]topology.File, 0, len(only))
	seen := map[string]bool{}
	for _, want := range only {
		f, err := topology.Find(files, filepath.ToSlash(want))
		if err != nil {
			return nil, err
		}
		if p := path.Clean(f.Path); !seen[p] {
			seen[p] = true
			selected = append(selected, f)
		}
	}
	return selected, nil
}
