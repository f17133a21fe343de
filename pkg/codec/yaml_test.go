package codec

import (
	"testing"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	src := `
name: CI
on:
  push:
    branches: [main]
jobs:
  test:
    runs-on: ubuntu-latest
    timeout-minutes: 10
    continue-on-error: false
    env:
      RATIO: 0.5
      EMPTY: ~
`
	n, err := ParseYAML([]byte(src))
	require.NoError(t, err)

	m := n.(*fragment.Mapping)
	assert.Equal(t, []string{"name", "on", "jobs"}, m.Keys())

	v, ok := m.Lookup("jobs", "test", "timeout-minutes")
	require.True(t, ok)
	assert.Equal(t, int64(10), v.(fragment.Scalar).Value())

	v, _ = m.Lookup("jobs", "test", "continue-on-error")
	assert.Equal(t, false, v.(fragment.Scalar).Value())

	v, _ = m.Lookup("jobs", "test", "env", "RATIO")
	assert.Equal(t, 0.5, v.(fragment.Scalar).Value())

	v, _ = m.Lookup("jobs", "test", "env", "EMPTY")
	assert.True(t, v.(fragment.Scalar).IsNull())

	v, _ = m.Lookup("on", "push", "branches")
	assert.True(t, fragment.Equal(fragment.Strings("main"), v))
}

func TestParseYAMLMergeKeys(t *testing.T) {
	src := `
base: &base
  a: 1
  b: 2
derived:
  <<: *base
  b: 3
`
	n, err := ParseYAML([]byte(src))
	require.NoError(t, err)

	derived, _ := n.(*fragment.Mapping).Lookup("derived")
	assert.True(t, fragment.Equal(fragment.Obj(fragment.P("a", 1), fragment.P("b", 3)), derived))
}

func TestParseYAMLMergeKeyList(t *testing.T) {
	src := `
a: &a
  x: 1
  y: 1
b: &b
  y: 2
  z: 2
derived:
  <<: [*a, *b]
  z: 3
`
	n, err := ParseYAML([]byte(src))
	require.NoError(t, err)

	derived, _ := n.(*fragment.Mapping).Lookup("derived")
	assert.True(t, fragment.OrderedEqual(fragment.Obj(
		fragment.P("x", 1),
		fragment.P("y", 1),
		fragment.P("z", 3),
	), derived), "got %#v", fragment.ToValue(derived))

	_, err = ParseYAML([]byte("s: &s hello\nd:\n  <<: *s\n"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrYAMLParse), "%v", err)
}

func TestParseYAMLEmpty(t *testing.T) {
	n, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n.(*fragment.Mapping).Len())
}

func TestParseYAMLError(t *testing.T) {
	_, err := ParseYAML([]byte("a: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrYAMLParse))

	assert.Panics(t, func() { MustParseYAML([]byte("a: [unclosed")) })
}

func TestEncodeYAML(t *testing.T) {
	n := fragment.Obj(
		fragment.P("name", "CI"),
		fragment.P("on", fragment.Obj(fragment.P("push", fragment.Obj(fragment.P("branches", fragment.Strings("main")))))),
		fragment.P("version", "1.0"),
		fragment.P("flag", true),
		fragment.P("weight", 2.0),
	)

	out, err := EncodeYAML(n)
	require.NoError(t, err)

	// Strings that would resolve to another type must stay strings.
	back, err := ParseYAML(out)
	require.NoError(t, err)
	assert.True(t, fragment.OrderedEqual(n, back), "round trip mismatch:\n%s", out)

	assert.Contains(t, string(out), "name: CI\n")
	assert.Contains(t, string(out), `"1.0"`)
	assert.Contains(t, string(out), "flag: true\n")
}
