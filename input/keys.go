package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key names delivered in event.KeyPayload
// Printable keys use their lowercase rune, so "w", "1", "["
const (
	KeySpace     = "Space"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyTab       = "Tab"
	KeyBackspace = "Backspace"
	KeyUp        = "ArrowUp"
	KeyDown      = "ArrowDown"
	KeyLeft      = "ArrowLeft"
	KeyRight     = "ArrowRight"
	KeyCtrlC     = "Ctrl+C"
	KeyCtrlQ     = "Ctrl+Q"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyCtrlQ:      KeyCtrlQ,
}

// quitKeys end the session instead of reaching the world
var quitKeys = map[string]bool{
	KeyCtrlC:  true,
	KeyCtrlQ:  true,
	KeyEscape: true,
}

// KeyName maps a tcell key event to its payload name; ok is false for unmapped keys
func KeyName(ev *tcell.EventKey) (string, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return KeySpace, true
		}
		if !unicode.IsPrint(r) {
			return "", false
		}
		return string(unicode.ToLower(r)), true
	}
	name, ok := specialKeys[ev.Key()]
	return name, ok
}

// IsQuit reports whether name ends the session
func IsQuit(name string) bool {
	return quitKeys[name]
}
