// Package paths resolves the repository root repokit works on.
package paths
