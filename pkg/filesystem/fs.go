package filesystem

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/logging"
)

// FS is the subset of file operations repokit needs.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
}

const (
	DirPerm  fs.FileMode = 0755
	FilePerm fs.FileMode = 0644
)

// Exists reports whether name exists. Errors other than "not exist" are
// returned as FILE_ACCESS.
func Exists(fsys FS, name string) (bool, error) {
	_, err := fsys.Lstat(name)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", name)
}

// WriteFile writes data to name, creating parent directories.
func WriteFile(fsys FS, name string, data []byte) error {
	dir := filepath.Dir(name)
	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir).
			WithDetail("path", dir)
	}
	if err := fsys.WriteFile(name, data, FilePerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", name).
			WithDetail("path", name)
	}
	return nil
}

// RemovePaths deletes every path recursively. Missing paths are not an
// error. It stops at the first failure.
func RemovePaths(fsys FS, paths ...string) ([]string, error) {
	logger := logging.GetLogger("filesystem")

	var removed []string
	for _, p := range paths {
		exists, err := Exists(fsys, p)
		if err != nil {
			return removed, err
		}
		if !exists {
			logger.Debug().Str("path", p).Msg("Nothing to remove")
			continue
		}
		if err := fsys.RemoveAll(p); err != nil {
			return removed, errors.Wrapf(err, errors.ErrFileRemove, "cannot remove %s", p).
				WithDetail("path", p)
		}
		logger.Info().Str("path", p).Msg("Removed")
		removed = append(removed, p)
	}
	return removed, nil
}
