package templates

import (
	"testing"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisibility(t *testing.T) {
	v, err := ParseVisibility(" Public ")
	require.NoError(t, err)
	assert.Equal(t, Public, v)

	v, err = ParseVisibility("private")
	require.NoError(t, err)
	assert.Equal(t, Private, v)

	_, err = ParseVisibility("internal")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestParseEnvironment(t *testing.T) {
	for _, s := range []string{"node", "LIBRARY", "browser"} {
		_, err := ParseEnvironment(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseEnvironment("deno")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestWithDefaults(t *testing.T) {
	p := Params{PackageName: "@acme/widgets", Visibility: Public}.WithDefaults()

	assert.Equal(t, Public, p.Visibility, "set fields are kept")
	assert.Equal(t, Node, p.Environment)
	assert.Equal(t, "20", p.NodeVersion)
	assert.Equal(t, "MIT", p.License)
	assert.Empty(t, p.RepoName, "no owner to guess")

	p = Params{PackageName: "x", RepoName: "acme/x", NodeVersion: "22"}.WithDefaults()
	assert.Equal(t, "acme/x", p.RepoName)
	assert.Equal(t, "22", p.NodeVersion)
}

func TestWithDefaultsLeavesDefaultsAlone(t *testing.T) {
	before := Defaults
	_ = Params{PackageName: "x", License: "Apache-2.0"}.WithDefaults()
	assert.Equal(t, before, Defaults)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Params{PackageName: "x", Visibility: Public, Environment: Browser, NodeVersion: "20"}.Validate())

	err := Params{Visibility: Public, Environment: Node}.Validate()
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = Params{PackageName: "x", Visibility: "secret", Environment: Node}.Validate()
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	tests := []struct {
		name        string
		nodeVersion string
		repo        string
		valid       bool
	}{
		{"major only", "22", "", true},
		{"full version", "20.11.1", "", true},
		{"owner and name", "20", "acme/widgets", true},
		{"empty node version", "", "", false},
		{"node alias", "lts", "", false},
		{"too many parts", "20.1.1.1", "", false},
		{"repository without owner", "20", "widgets", false},
		{"repository with extra path", "20", "acme/widgets/core", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{PackageName: "x", Visibility: Public, Environment: Node, NodeVersion: tt.nodeVersion, RepoName: tt.repo}
			err := p.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "%v", err)
		})
	}
}

func TestNodeMajor(t *testing.T) {
	assert.Equal(t, "20", Params{NodeVersion: "20.11.1"}.NodeMajor())
	assert.Equal(t, "22", Params{NodeVersion: "22"}.NodeMajor())
}

func TestUnscopedName(t *testing.T) {
	assert.Equal(t, "widgets", UnscopedName("@acme/widgets"))
	assert.Equal(t, "widgets", UnscopedName("widgets"))
	assert.Equal(t, "@weird", UnscopedName("@weird"))
}
