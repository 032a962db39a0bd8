package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/gravity-sim-go/input"
)

var runeKeys = map[rune]input.Key{
	' ': input.KeySpace,
	'-': input.KeyMinus,
	'=': input.KeyEqual,
	'+': input.KeyEqual,
	'c': input.KeyC,
	'r': input.KeyR,
	'g': input.KeyG,
	'w': input.KeyW,
	'a': input.KeyA,
	's': input.KeyS,
	'd': input.KeyD,
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyRight: input.KeyRight,
	tcell.KeyUp:    input.KeyUp,
	tcell.KeyDown:  input.KeyDown,
	tcell.KeyTab:   input.KeyTab,
}

// mapKey translates a terminal key event. Letters match either case.
func mapKey(ev *tcell.EventKey) (input.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		k, ok := runeKeys[r]
		return k, ok
	}
	k, ok := specialKeys[ev.Key()]
	return k, ok
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
