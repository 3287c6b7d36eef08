package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalshah912/resc/internal/config"
)

func TestPseudolocalizeGeneratesBothLocales(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<string name="greeting">Hello</string>
	</resources>`, defaultOpts())

	Pseudolocalize(tbl)

	e := findEntry(t, tbl, "string", "greeting")
	require.Len(t, e.Values, 3)

	accented := e.FindValue(pseudoAccented)
	require.NotNil(t, accented)
	assert.True(t, accented.Weak)
	assert.True(t, strings.HasPrefix(accented.Data, "["))
	assert.True(t, strings.HasSuffix(accented.Data, "]"))
	assert.NotContains(t, accented.Data, "Hello")

	rtl := e.FindValue(pseudoRTL)
	require.NotNil(t, rtl)
	assert.True(t, rtl.Weak)
	assert.Contains(t, rtl.Data, "Hello")
	assert.Contains(t, rtl.Data, rlo)
}

func TestPseudolocalizeSkipsUntranslatable(t *testing.T) {
	t.Parallel()

	opts := defaultOpts()
	opts.Translatable = false
	tbl := parseString(t, `<resources>
		<string name="version">1.2.3</string>
	</resources>`, opts)

	Pseudolocalize(tbl)

	assert.Len(t, findEntry(t, tbl, "string", "version").Values, 1)
}

func TestPseudolocalizeSkipsNonDefaultConfigs(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse("en-rUS")
	require.NoError(t, err)
	opts := defaultOpts()
	opts.Config = cfg

	tbl := parseString(t, `<resources>
		<string name="greeting">Howdy</string>
	</resources>`, opts)

	Pseudolocalize(tbl)

	assert.Len(t, findEntry(t, tbl, "string", "greeting").Values, 1)
}

func TestPseudolocalizeKeepsExplicitDefinition(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<string name="greeting">Hello</string>
	</resources>`, defaultOpts())

	e := findEntry(t, tbl, "string", "greeting")
	require.NoError(t, e.AddValue(&Value{
		Config: pseudoAccented,
		Kind:   KindString,
		Data:   "explicit en-XA",
	}))

	Pseudolocalize(tbl)

	assert.Equal(t, "explicit en-XA", e.FindValue(pseudoAccented).Data)
}

func TestPseudolocalizePlurals(t *testing.T) {
	t.Parallel()

	tbl := parseString(t, `<resources>
		<plurals name="songs">
			<item quantity="one">%1$d song</item>
			<item quantity="other">%1$d songs</item>
		</plurals>
	</resources>`, defaultOpts())

	Pseudolocalize(tbl)

	e := findEntry(t, tbl, "plurals", "songs")
	accented := e.FindValue(pseudoAccented)
	require.NotNil(t, accented)
	require.Len(t, accented.Items, 2)
	// Format substitutions survive accenting.
	assert.Contains(t, accented.Items[0].Value, "%1$d")
}

func TestAccentPreservesSubstitutions(t *testing.T) {
	t.Parallel()

	got := accent("Hi %1$s, you have %2$d items")
	assert.Contains(t, got, "%1$s")
	assert.Contains(t, got, "%2$d")
	assert.NotContains(t, got, "Hi")
}
