// Package restype defines the closed vocabulary of resource types and the
// mapping from type-directory names to type tags.
package restype

// Type is a tag identifying one kind of resource.
type Type uint8

const (
	Unknown Type = iota
	Anim
	Animator
	Color
	Drawable
	Font
	ID
	Interpolator
	Layout
	Menu
	Mipmap
	Navigation
	Plurals
	Raw
	String
	Transition
	Values
	XML
)

var names = map[Type]string{
	Anim:         "anim",
	Animator:     "animator",
	Color:        "color",
	Drawable:     "drawable",
	Font:         "font",
	ID:           "id",
	Interpolator: "interpolator",
	Layout:       "layout",
	Menu:         "menu",
	Mipmap:       "mipmap",
	Navigation:   "navigation",
	Plurals:      "plurals",
	Raw:          "raw",
	String:       "string",
	Transition:   "transition",
	Values:       "values",
	XML:          "xml",
}

var byName = func() map[string]Type {
	m := make(map[string]Type, len(names))
	for t, n := range names {
		m[n] = t
	}
	return m
}()

// Parse maps a type-directory name to its tag. The second result is false
// for names outside the vocabulary.
func Parse(name string) (Type, bool) {
	t, ok := byName[name]
	return t, ok
}

// String returns the directory name of the type, or "unknown".
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "unknown"
}
