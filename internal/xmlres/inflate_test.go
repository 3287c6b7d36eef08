package xmlres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inflate(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Inflate(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestInflate(t *testing.T) {
	t.Parallel()

	doc := inflate(t, `<LinearLayout xmlns:app="urn:app"
			app:orientation="vertical">
		<TextView app:text="hello"/>
		<Button app:text="ok"/>
	</LinearLayout>`)

	root := doc.Root
	assert.Equal(t, "LinearLayout", root.Name)
	v, ok := root.Attr("urn:app", "orientation")
	require.True(t, ok)
	assert.Equal(t, "vertical", v)

	var children []string
	root.Elements(func(n *Node) bool {
		children = append(children, n.Name)
		return true
	})
	assert.Equal(t, []string{"TextView", "Button"}, children)
}

func TestInflateDropsNamespaceDeclarations(t *testing.T) {
	t.Parallel()

	doc := inflate(t, `<View xmlns:a="urn:a" xmlns="urn:default"/>`)
	assert.Empty(t, doc.Root.Attrs)
}

func TestInflateKeepsMixedContent(t *testing.T) {
	t.Parallel()

	doc := inflate(t, `<message>before <b>bold</b> after</message>`)
	require.Len(t, doc.Root.Children, 3)
	assert.Equal(t, "before ", doc.Root.Children[0].Text)
	assert.Equal(t, "b", doc.Root.Children[1].Name)
	assert.Equal(t, " after", doc.Root.Children[2].Text)
}

func TestInflateErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"",
		"<open>",
		"<a></b>",
		"<a/><b/>",
	} {
		_, err := Inflate(strings.NewReader(src))
		assert.Error(t, err, "source %q", src)
	}
}

func TestCollectIDs(t *testing.T) {
	t.Parallel()

	doc := inflate(t, `<LinearLayout xmlns:app="urn:app">
		<TextView app:id="@+id/title" app:labelFor="@id/body"/>
		<TextView app:id="@+id/body"/>
		<TextView app:id="@+id/title"/>
	</LinearLayout>`)

	CollectIDs(doc)
	assert.Equal(t, []string{"title", "body"}, doc.DefinedIDs)
}
