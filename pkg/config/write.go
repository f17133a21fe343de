package config

import (
	"bytes"
	"path/filepath"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/filesystem"
	toml "github.com/pelletier/go-toml/v2"
)

const fileHeader = "# repokit configuration. Run `repokit generate` after editing.\n\n"

// Marshal renders cfg as a repokit.toml document.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrEncode, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// Write stores cfg as repokit.toml under root. An existing config file is
// only replaced when force is set.
func Write(fsys filesystem.FS, root string, cfg *Config, force bool) (string, error) {
	if existing := findFile(fsys, root); existing != "" && !force {
		return existing, errors.Newf(errors.ErrFileWrite, "%s already exists", existing).
			WithDetail("path", existing)
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, FileNames[0])
	if err := filesystem.WriteFile(fsys, target, data); err != nil {
		return "", err
	}
	return target, nil
}

func findFile(fsys filesystem.FS, root string) string {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if ok, _ := filesystem.Exists(fsys, p); ok {
			return p
		}
	}
	return ""
}
