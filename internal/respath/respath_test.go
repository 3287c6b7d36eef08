package respath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	d, err := Classify("res/layout-land/main.xml")
	require.NoError(t, err)

	assert.Equal(t, "res/layout-land/main.xml", d.Source)
	assert.Equal(t, "layout", d.TypeDir)
	assert.Equal(t, "land", d.ConfigStr)
	assert.Equal(t, "main", d.Name)
	assert.Equal(t, "xml", d.Extension)
}

func TestClassifyNoQualifier(t *testing.T) {
	t.Parallel()

	d, err := Classify("res/values/strings.xml")
	require.NoError(t, err)

	assert.Equal(t, "values", d.TypeDir)
	assert.Empty(t, d.ConfigStr)
	assert.True(t, d.Config.IsDefault())
}

func TestClassifySplitsOnFirstDot(t *testing.T) {
	t.Parallel()

	d, err := Classify("res/drawable/icon.9.png")
	require.NoError(t, err)

	assert.Equal(t, "icon", d.Name)
	assert.Equal(t, "9.png", d.Extension)
}

func TestClassifyNoExtension(t *testing.T) {
	t.Parallel()

	d, err := Classify("res/raw/blob")
	require.NoError(t, err)

	assert.Equal(t, "blob", d.Name)
	assert.Empty(t, d.Extension)
}

func TestClassifyBadPath(t *testing.T) {
	t.Parallel()

	_, err := Classify("strings.xml")
	require.ErrorIs(t, err, ErrBadPath)
}

func TestClassifyBadQualifier(t *testing.T) {
	t.Parallel()

	_, err := Classify("res/values-bogus27/strings.xml")
	require.Error(t, err)
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	a, err := Classify("res/values-en-rUS-hdpi/strings.xml")
	require.NoError(t, err)
	b, err := Classify("res/values-en-rUS-hdpi/strings.xml")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, OutputName(a), OutputName(b))
}

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"res/layout/main.xml", "layout_main.xml.flat"},
		{"res/layout-land/main.xml", "layout-land_main.xml.flat"},
		{"res/values-en-rUS/strings.xml", "values-en-rUS_strings.xml.flat"},
		{"res/drawable-hdpi/icon.9.png", "drawable-hdpi_icon.9.png.flat"},
		{"res/raw/blob", "raw_blob.flat"},
	}
	for _, tt := range tests {
		d, err := Classify(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, OutputName(d), "path %q", tt.path)
	}
}
