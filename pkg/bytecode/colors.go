package bytecode

// Colors is a palette index, as carried by the COLOR opcode's u8 operand.
type Colors byte

// The full VQsX palette. Names prefixed with B are the "bright" variants.
const (
	BRED       Colors = 0
	BGREEN     Colors = 1
	BBLUE      Colors = 2
	BYELLOW    Colors = 3
	BMAGENTA   Colors = 4
	BCYAN      Colors = 5
	BORANGE    Colors = 6
	BPINK      Colors = 7
	BLIME      Colors = 8
	BSKYBLUE   Colors = 9
	BPURPLE    Colors = 10
	BTEAL      Colors = 11
	AZURE      Colors = 12
	BWHITE     Colors = 13
	BBEIGE     Colors = 14
	LAVENDER   Colors = 15
	FUCHSIA    Colors = 16
	OLIVE      Colors = 17
	BROWN      Colors = 18
	LIGHTBROWN Colors = 19
	TAN        Colors = 20
	GOLD       Colors = 21
)

// ColorCount is the number of named palette entries.
const ColorCount = int(GOLD) + 1

// colorNames backs IndexToName/NameToIndex without requiring a linear scan
// of the const block.
var colorNames = map[Colors]string{
	BRED: "BRED", BGREEN: "BGREEN", BBLUE: "BBLUE", BYELLOW: "BYELLOW",
	BMAGENTA: "BMAGENTA", BCYAN: "BCYAN", BORANGE: "BORANGE", BPINK: "BPINK",
	BLIME: "BLIME", BSKYBLUE: "BSKYBLUE", BPURPLE: "BPURPLE", BTEAL: "BTEAL",
	AZURE: "AZURE", BWHITE: "BWHITE", BBEIGE: "BBEIGE", LAVENDER: "LAVENDER",
	FUCHSIA: "FUCHSIA", OLIVE: "OLIVE", BROWN: "BROWN",
	LIGHTBROWN: "LIGHTBROWN", TAN: "TAN", GOLD: "GOLD",
}

var namesToColor = func() map[string]Colors {
	m := make(map[string]Colors, len(colorNames))
	for c, name := range colorNames {
		m[name] = c
	}
	return m
}()

// IndexToName converts a raw palette index into a Colors value. It returns
// false for any index outside the defined palette; unlike MapColor, it
// performs no BRED fallback; that policy is specific to color resolution.
func IndexToName(index int) (Colors, bool) {
	if index < 0 || index >= ColorCount {
		return BRED, false
	}
	return Colors(index), true
}

// NameToIndex returns the integer palette index for a named color.
func NameToIndex(c Colors) int {
	return int(c)
}

// NameToStr renders a Colors value as its canonical name.
func NameToStr(c Colors) (string, bool) {
	name, ok := colorNames[c]
	return name, ok
}

// StrToName parses a canonical color name back into a Colors value.
func StrToName(s string) (Colors, bool) {
	c, ok := namesToColor[s]
	return c, ok
}

// RGBColor is a resolved palette color. Field order is red, green, blue;
// the original Python ColorMap declared its RGBColor NamedTuple as
// (red, blue, green) but every caller constructed it positionally as if it
// were (red, green, blue), so the declared order was simply wrong. This
// type uses the order callers actually rely on.
type RGBColor struct {
	Red, Green, Blue byte
}

// colorMap holds the RGB triple for every palette index this revision
// defines a concrete color for. Per §9, indices without an entry here
// (14-21) are not an error: MapColor resolves them to BRED, same as any
// other out-of-range index.
var colorMap = map[Colors]RGBColor{
	BRED:     {0xFF, 0x55, 0x55},
	BGREEN:   {0x55, 0xFF, 0x55},
	BBLUE:    {0x55, 0x55, 0xFF},
	BYELLOW:  {0xFF, 0xFF, 0x55},
	BMAGENTA: {0xFF, 0x55, 0xFF},
	BCYAN:    {0x55, 0xFF, 0xFF},
	BORANGE:  {0xFF, 0xAA, 0x55},
	BPINK:    {0xFF, 0x69, 0xB4},
	BLIME:    {0xAA, 0xFF, 0x55},
	BSKYBLUE: {0x87, 0xCE, 0xEB},
	BPURPLE:  {0xA0, 0x20, 0xF0},
	BTEAL:    {0x00, 0x80, 0x80},
	AZURE:    {0xF0, 0xFF, 0xFF},
	BWHITE:   {0xFF, 0xFF, 0xFF},
}

// MapColor resolves a raw palette index to its RGB triple. Any index that
// is not a defined Colors member, and any defined member without a
// colorMap entry (BBEIGE through GOLD), resolves to BRED's triple; this
// is the spec-mandated default, not an error.
func MapColor(index int) RGBColor {
	c, ok := IndexToName(index)
	if !ok {
		c = BRED
	}
	triple, ok := colorMap[c]
	if !ok {
		triple = colorMap[BRED]
	}
	return triple
}
