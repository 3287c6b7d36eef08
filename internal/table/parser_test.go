package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalshah912/resc/internal/config"
)

func parseString(t *testing.T, src string, opts ParseOptions) *Table {
	t.Helper()
	tbl := &Table{}
	require.NoError(t, Parse(strings.NewReader(src), tbl, opts))
	return tbl
}

func defaultOpts() ParseOptions {
	return ParseOptions{Translatable: true, Source: "test/values/strings.xml"}
}

func findEntry(t *testing.T, tbl *Table, typ, name string) *Entry {
	t.Helper()
	for _, pkg := range tbl.Packages {
		for _, tg := range pkg.Types {
			if tg.Name != typ {
				continue
			}
			for _, e := range tg.Entries {
				if e.Name == name {
					return e
				}
			}
		}
	}
	t.Fatalf("entry %s/%s not found", typ, name)
	return nil
}

func TestParseString(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<string name="app_name">My App</string>
	</resources>`, defaultOpts())

	e := findEntry(t, tbl, "string", "app_name")
	require.Len(t, e.Values, 1)
	assert.Equal(t, "My App", e.Values[0].Data)
	assert.True(t, e.Values[0].Translatable)
}

func TestParseTranslatableDefault(t *testing.T) {
	t.Parallel()

	opts := defaultOpts()
	opts.Translatable = false
	tbl := parseString(t, `<resources>
		<string name="version">1.2.3</string>
		<string name="greeting" translatable="true">Hi</string>
	</resources>`, opts)

	assert.False(t, findEntry(t, tbl, "string", "version").Values[0].Translatable)
	assert.True(t, findEntry(t, tbl, "string", "greeting").Values[0].Translatable)
}

func TestParsePlurals(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<plurals name="songs">
			<item quantity="one">%d song</item>
			<item quantity="other">%d songs</item>
		</plurals>
	</resources>`, defaultOpts())

	e := findEntry(t, tbl, "plurals", "songs")
	require.Len(t, e.Values, 1)
	v := e.Values[0]
	require.Len(t, v.Items, 2)
	assert.Equal(t, "one", v.Items[0].Quantity)
	assert.Equal(t, "%d song", v.Items[0].Value)
	assert.Equal(t, "other", v.Items[1].Quantity)
}

func TestParseNestedMarkupKeepsRaw(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<string name="styled">Hello <b>bold</b> world</string>
	</resources>`, defaultOpts())

	v := findEntry(t, tbl, "string", "styled").Values[0]
	assert.Equal(t, "Hello bold world", v.Data)
	assert.Equal(t, "Hello <b>bold</b> world", v.Raw)
}

func TestParsePositionalErrors(t *testing.T) {
	t.Parallel()

	src := `<resources>
		<string name="two_subs">%s and %s</string>
	</resources>`

	err := Parse(strings.NewReader(src), &Table{}, defaultOpts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positional")
}

func TestParsePositionalLegacyWarns(t *testing.T) {
	t.Parallel()

	opts := defaultOpts()
	opts.Legacy = true
	tbl := parseString(t, `<resources>
		<string name="two_subs">%s and %s</string>
	</resources>`, opts)

	// Legacy mode keeps the entry.
	findEntry(t, tbl, "string", "two_subs")
}

func TestParsePositionalIndexedOK(t *testing.T) {
	t.Parallel()

	parseString(t, `<resources>
		<string name="two_subs">%1$s and %2$s</string>
	</resources>`, defaultOpts())
}

func TestParseSimpleValues(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<color name="accent">#ff4081</color>
		<bool name="enabled">true</bool>
		<integer name="max">42</integer>
		<dimen name="margin">16dp</dimen>
		<item type="id" name="toolbar"/>
	</resources>`, defaultOpts())

	assert.Equal(t, "#ff4081", findEntry(t, tbl, "color", "accent").Values[0].Data)
	assert.Equal(t, "true", findEntry(t, tbl, "bool", "enabled").Values[0].Data)
	assert.Equal(t, "42", findEntry(t, tbl, "integer", "max").Values[0].Data)
	assert.Equal(t, "16dp", findEntry(t, tbl, "dimen", "margin").Values[0].Data)
	findEntry(t, tbl, "id", "toolbar")
}

func TestParsePublicSetsIDs(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<string name="app_name">My App</string>
		<public type="string" name="app_name" id="0x7f040001"/>
	</resources>`, defaultOpts())

	e := findEntry(t, tbl, "string", "app_name")
	assert.True(t, e.HasID)
	assert.Equal(t, uint16(0x0001), e.ID)

	require.Len(t, tbl.Packages, 1)
	assert.True(t, tbl.Packages[0].HasID)
	assert.Equal(t, uint8(0x7f), tbl.Packages[0].ID)
}

func TestParseDuplicateStrongConflicts(t *testing.T) {
	t.Parallel()

	src := `<resources>
		<string name="dup">one</string>
		<string name="dup">two</string>
	</resources>`
	err := Parse(strings.NewReader(src), &Table{}, defaultOpts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseUnknownElement(t *testing.T) {
	t.Parallel()

	err := Parse(strings.NewReader(`<resources><widget name="x"/></resources>`), &Table{}, defaultOpts())
	require.Error(t, err)
}

func TestParseConfigStamped(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse("en-rUS")
	require.NoError(t, err)

	opts := defaultOpts()
	opts.Config = cfg
	tbl := parseString(t, `<resources><string name="hello">Bonjour</string></resources>`, opts)

	assert.Equal(t, cfg, findEntry(t, tbl, "string", "hello").Values[0].Config)
}
