package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"merging.md":          {Data: []byte("# Merging\n\nArrays are concatenated.")},
		"topologies.txt":      {Data: []byte("one-package, monorepo")},
		"option-dry-run.md":   {Data: []byte("Nothing is written.")},
		"notes/extra.md":      {Data: []byte("nested")},
		"ignored.json":        {Data: []byte("{}")},
		"notes/also-skip.cfg": {Data: []byte("x")},
	}
}

func TestScan(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"extra", "merging", "option-dry-run", "topologies"}, tm.ListTopics())

	topic, ok := tm.GetTopic("merging")
	require.True(t, ok)
	assert.Equal(t, "# Merging\n\nArrays are concatenated.", topic.Content)
	assert.Equal(t, "merging.md", topic.FilePath)

	_, ok = tm.GetTopic("ignored")
	assert.False(t, ok)
}

func TestCustomExtensions(t *testing.T) {
	tm, err := New(testFS(), Options{Extensions: []string{".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ignored"}, tm.ListTopics())
}

func TestFlagStyleLookup(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	for _, name := range []string{"--dry-run", "-dry-run", "dry-run", "option-dry-run"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-dry-run", topic.Name)
	}
}

func TestPrintList(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	tm.PrintList(&buf, "repokit")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  extra\n  merging\n  topologies\n")
	assert.Contains(t, out, "Option topics:\n  --dry-run\n")
	assert.Contains(t, out, "'repokit topics <topic>'")

	empty, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)
	buf.Reset()
	empty.PrintList(&buf, "repokit")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestInstall(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "repokit"}
	root.AddCommand(&cobra.Command{Use: "generate", Short: "Write files", Run: func(*cobra.Command, []string) {}})
	tm.Install(root)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Equal(t, "one-package, monorepo", run("help", "topologies"))
	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.Contains(t, run("help", "generate"), "Write files")
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain", r.Render("plain", ".txt"))

	out := r.Render("# Title\n\nbody", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}

func TestRendererFor(t *testing.T) {
	t.Run("pipe gets notty markdown", func(t *testing.T) {
		r := RendererFor(&bytes.Buffer{})
		g, ok := r.(*GlamourRenderer)
		require.True(t, ok, "got %T", r)
		assert.Equal(t, "notty", g.Style)
	})

	t.Run("NO_COLOR prints plain text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		r := RendererFor(&bytes.Buffer{})
		assert.Equal(t, PlainRenderer{}, r)
		assert.Equal(t, "# Title", r.Render("# Title", ".md"))
	})
}
