package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Board palette.
const (
	ColorWater    = ColorBlue
	ColorVessel   = ColorWhite
	ColorSelected = ColorBrightYellow
	ColorHit      = ColorBrightRed
	ColorSunk     = ColorRed
	ColorMiss     = ColorGray
	ColorCursor   = ColorBrightCyan
	ColorHUD      = ColorCyan
)
