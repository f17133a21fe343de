// Package filesystem is the file access seam of repokit.
//
// Everything that touches disk goes through FS. NewOS is used by the
// commands; tests run against NewAferoFS(afero.NewMemMapFs()).
package filesystem
