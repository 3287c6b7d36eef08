// Package config parses configuration qualifier strings.
//
// A qualifier string is the dash-separated suffix of a resource type
// directory, e.g. "en-rUS-hdpi" in "values-en-rUS-hdpi". Qualifiers must
// appear in a fixed order; any token that does not match the next permitted
// qualifier fails the whole parse.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Density buckets. Values are dots-per-inch; named buckets use their
// conventional dpi.
const (
	DensityDefault uint16 = 0
	DensityLow     uint16 = 120
	DensityMedium  uint16 = 160
	DensityHigh    uint16 = 240
	DensityXHigh   uint16 = 320
	DensityXXHigh  uint16 = 480
	DensityXXXHigh uint16 = 640
	DensityAny     uint16 = 0xfffe
	DensityNone    uint16 = 0xffff
)

// Orientation values.
const (
	OrientAny uint8 = iota
	OrientPort
	OrientLand
)

// Night mode values.
const (
	NightAny uint8 = iota
	NightYes
	NightNo
)

// Layout direction values.
const (
	DirAny uint8 = iota
	DirLTR
	DirRTL
)

// Config is the parsed form of a qualifier string. The zero value is the
// default configuration, matching any target.
type Config struct {
	MCC uint16
	MNC uint16

	Language string // lowercase two-letter code
	Region   string // uppercase two-letter code

	LayoutDir     uint8
	SmallestWidth uint16 // dp
	ScreenWidth   uint16 // dp
	ScreenHeight  uint16 // dp
	ScreenSize    string // small, normal, large, xlarge
	Orientation   uint8
	Night         uint8
	Density       uint16
	SDKVersion    uint16
}

// Default returns the default configuration.
func Default() Config { return Config{} }

// IsDefault reports whether c matches any target, i.e. no qualifiers are set.
func (c Config) IsDefault() bool { return c == Config{} }

// parse stages, in required order.
const (
	stageMCC = iota
	stageMNC
	stageLanguage
	stageRegion
	stageLayoutDir
	stageSmallestWidth
	stageScreenWidth
	stageScreenHeight
	stageScreenSize
	stageOrientation
	stageNight
	stageDensity
	stageVersion
	stageDone
)

// Parse parses a qualifier string. The empty string yields the default
// configuration.
func Parse(s string) (Config, error) {
	var c Config
	if s == "" {
		return c, nil
	}
	stage := stageMCC
	for part := range strings.SplitSeq(s, "-") {
		if part == "" {
			return Config{}, fmt.Errorf("invalid configuration %q: empty qualifier", s)
		}
		next, err := c.apply(part, stage)
		if err != nil {
			return Config{}, fmt.Errorf("invalid configuration %q: %w", s, err)
		}
		stage = next
	}
	return c, nil
}

// apply consumes one qualifier token, trying each stage from the current one
// onward. It returns the stage following the one that matched.
func (c *Config) apply(part string, stage int) (int, error) {
	for st := stage; st < stageDone; st++ {
		ok, err := c.tryStage(part, st)
		if err != nil {
			return 0, err
		}
		if ok {
			return st + 1, nil
		}
	}
	return 0, fmt.Errorf("unexpected qualifier %q", part)
}

//nolint:gocyclo // one arm per qualifier kind
func (c *Config) tryStage(part string, stage int) (bool, error) {
	switch stage {
	case stageMCC:
		if v, ok := strings.CutPrefix(part, "mcc"); ok {
			return true, setUint16(&c.MCC, v, "mcc")
		}
	case stageMNC:
		if v, ok := strings.CutPrefix(part, "mnc"); ok {
			return true, setUint16(&c.MNC, v, "mnc")
		}
	case stageLanguage:
		if len(part) == 2 && isAlphaLower(part) {
			c.Language = part
			return true, nil
		}
	case stageRegion:
		if v, ok := strings.CutPrefix(part, "r"); ok && len(v) == 2 && isAlphaUpper(v) {
			c.Region = v
			return true, nil
		}
	case stageLayoutDir:
		switch part {
		case "ldltr":
			c.LayoutDir = DirLTR
			return true, nil
		case "ldrtl":
			c.LayoutDir = DirRTL
			return true, nil
		}
	case stageSmallestWidth:
		if v, ok := cutAffix(part, "sw", "dp"); ok {
			return true, setUint16(&c.SmallestWidth, v, "smallest width")
		}
	case stageScreenWidth:
		if v, ok := cutAffix(part, "w", "dp"); ok {
			return true, setUint16(&c.ScreenWidth, v, "screen width")
		}
	case stageScreenHeight:
		if v, ok := cutAffix(part, "h", "dp"); ok {
			return true, setUint16(&c.ScreenHeight, v, "screen height")
		}
	case stageScreenSize:
		switch part {
		case "small", "normal", "large", "xlarge":
			c.ScreenSize = part
			return true, nil
		}
	case stageOrientation:
		switch part {
		case "port":
			c.Orientation = OrientPort
			return true, nil
		case "land":
			c.Orientation = OrientLand
			return true, nil
		}
	case stageNight:
		switch part {
		case "night":
			c.Night = NightYes
			return true, nil
		case "notnight":
			c.Night = NightNo
			return true, nil
		}
	case stageDensity:
		switch part {
		case "ldpi":
			c.Density = DensityLow
		case "mdpi":
			c.Density = DensityMedium
		case "hdpi":
			c.Density = DensityHigh
		case "xhdpi":
			c.Density = DensityXHigh
		case "xxhdpi":
			c.Density = DensityXXHigh
		case "xxxhdpi":
			c.Density = DensityXXXHigh
		case "anydpi":
			c.Density = DensityAny
		case "nodpi":
			c.Density = DensityNone
		default:
			v, ok := cutAffix(part, "", "dpi")
			if !ok {
				return false, nil
			}
			return true, setUint16(&c.Density, v, "density")
		}
		return true, nil
	case stageVersion:
		if v, ok := strings.CutPrefix(part, "v"); ok {
			return true, setUint16(&c.SDKVersion, v, "version")
		}
	}
	return false, nil
}

// String reconstructs the qualifier string. Parse(c.String()) is the
// identity for any parsed Config.
//
//nolint:gocyclo // one arm per qualifier kind
func (c Config) String() string {
	var parts []string
	if c.MCC != 0 {
		parts = append(parts, "mcc"+strconv.Itoa(int(c.MCC)))
	}
	if c.MNC != 0 {
		parts = append(parts, "mnc"+strconv.Itoa(int(c.MNC)))
	}
	if c.Language != "" {
		parts = append(parts, c.Language)
	}
	if c.Region != "" {
		parts = append(parts, "r"+c.Region)
	}
	switch c.LayoutDir {
	case DirLTR:
		parts = append(parts, "ldltr")
	case DirRTL:
		parts = append(parts, "ldrtl")
	}
	if c.SmallestWidth != 0 {
		parts = append(parts, "sw"+strconv.Itoa(int(c.SmallestWidth))+"dp")
	}
	if c.ScreenWidth != 0 {
		parts = append(parts, "w"+strconv.Itoa(int(c.ScreenWidth))+"dp")
	}
	if c.ScreenHeight != 0 {
		parts = append(parts, "h"+strconv.Itoa(int(c.ScreenHeight))+"dp")
	}
	if c.ScreenSize != "" {
		parts = append(parts, c.ScreenSize)
	}
	switch c.Orientation {
	case OrientPort:
		parts = append(parts, "port")
	case OrientLand:
		parts = append(parts, "land")
	}
	switch c.Night {
	case NightYes:
		parts = append(parts, "night")
	case NightNo:
		parts = append(parts, "notnight")
	}
	switch c.Density {
	case DensityDefault:
	case DensityLow:
		parts = append(parts, "ldpi")
	case DensityMedium:
		parts = append(parts, "mdpi")
	case DensityHigh:
		parts = append(parts, "hdpi")
	case DensityXHigh:
		parts = append(parts, "xhdpi")
	case DensityXXHigh:
		parts = append(parts, "xxhdpi")
	case DensityXXXHigh:
		parts = append(parts, "xxxhdpi")
	case DensityAny:
		parts = append(parts, "anydpi")
	case DensityNone:
		parts = append(parts, "nodpi")
	default:
		parts = append(parts, strconv.Itoa(int(c.Density))+"dpi")
	}
	if c.SDKVersion != 0 {
		parts = append(parts, "v"+strconv.Itoa(int(c.SDKVersion)))
	}
	return strings.Join(parts, "-")
}

// Locale returns the language[-rREGION] form, or "" for the default locale.
func (c Config) Locale() string {
	if c.Language == "" {
		return ""
	}
	if c.Region == "" {
		return c.Language
	}
	return c.Language + "-r" + c.Region
}

func cutAffix(s, prefix, suffix string) (string, bool) {
	v, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return "", false
	}
	v, ok = strings.CutSuffix(v, suffix)
	if !ok || v == "" {
		return "", false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return "", false
		}
	}
	return v, true
}

func setUint16(dst *uint16, s, what string) error {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return fmt.Errorf("bad %s value %q", what, s)
	}
	*dst = uint16(v)
	return nil
}

func isAlphaLower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func isAlphaUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
