package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI color codes in the platform renderer.
type Color uint8

// Predefined colors. The snake palette follows the classic curses scheme:
// blue head, cyan body, green powerup, yellow super powerup, red bomb.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightWhite
)
