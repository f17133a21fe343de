package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/logging"
)

const (
	// EnvRoot overrides root discovery.
	EnvRoot = "REPOKIT_ROOT"
	EnvHome = "HOME"
)

// FindRoot determines the repository root using the following priority:
//  1. REPOKIT_ROOT environment variable (if set)
//  2. The nearest directory, from start upwards, holding one of markers
//  3. Git repository root of start (git rev-parse --show-toplevel)
//  4. start itself
//
// fallback is true only in the last case.
func FindRoot(start string, markers []string) (root string, fallback bool, err error) {
	logger := logging.GetLogger("paths")

	if env := os.Getenv(EnvRoot); env != "" {
		return ExpandHome(env), false, nil
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", start)
	}

	if dir, ok := findMarker(abs, markers); ok {
		logger.Debug().Str("root", dir).Msg("Found config marker")
		return dir, false, nil
	}

	if gitRoot, err := findGitRoot(abs); err == nil {
		logger.Debug().Str("root", gitRoot).Msg("Using git root")
		return gitRoot, false, nil
	}

	return abs, true, nil
}

func findMarker(dir string, markers []string) (string, bool) {
	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// findGitRoot attempts to find the root of the git repository holding dir
func findGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is left alone
	return path
}
