package codec

import (
	"math"
	"testing"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSModule(t *testing.T) {
	n := fragment.Obj(
		fragment.P("test", fragment.Obj(
			fragment.P("environment", "node"),
			fragment.P("include", fragment.Strings("src/**/*.test.ts")),
			fragment.P("coverage", fragment.Obj(fragment.P("exclude", fragment.Seq()))),
		)),
		fragment.P("some-key", 1),
	)

	out, err := EncodeJSModule(n, JSModule{
		Imports: []string{"import { defineConfig } from 'vitest/config';"},
		Wrapper: "defineConfig",
	})
	require.NoError(t, err)

	want := `import { defineConfig } from 'vitest/config';

export default defineConfig({
  test: {
    environment: 'node',
    include: [
      'src/**/*.test.ts',
    ],
    coverage: {
      exclude: [],
    },
  },
  'some-key': 1,
});
`
	assert.Equal(t, want, string(out))
}

func TestEncodeJSModuleCommonJS(t *testing.T) {
	n := fragment.Obj(fragment.P("singleQuote", true), fragment.P("printWidth", 100))

	out, err := EncodeJSModule(n, JSModule{
		Header: []string{"@ts-check"},
		Style:  ExportCommonJS,
	})
	require.NoError(t, err)

	want := `// @ts-check

module.exports = {
  singleQuote: true,
  printWidth: 100,
};
`
	assert.Equal(t, want, string(out))
}

func TestJSString(t *testing.T) {
	assert.Equal(t, `'it\'s'`, jsString("it's"))
	assert.Equal(t, `'a\\b\nc'`, jsString("a\\b\nc"))
	assert.Equal(t, `'\u0001'`, jsString("\x01"))
}

func TestEncodeJSModuleRejectsNaN(t *testing.T) {
	_, err := EncodeJSModule(fragment.Obj(fragment.P("x", math.NaN())), JSModule{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEncode))
}
