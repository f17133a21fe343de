// Package config loads repokit.toml and turns it into a topology.Package.
//
// Configuration is layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. repokit.toml, .repokit.toml, repokit.yaml or .repokit.yaml at the root
//  3. REPOKIT_* environment variables (REPOKIT_NODE_VERSION -> node_version)
//
// Workspace packages are declared as [[packages]] tables and inherit
// visibility, environment, license and node_version from the root.
package config
