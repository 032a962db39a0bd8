// Package input reduces raw key and mouse events into per-frame state:
// held keys, edge-triggered taps with a re-trigger cooldown, and a mouse
// gesture phase.
package input

// Key is a logical key. Frontends map their own key codes onto it.
type Key uint8

const (
	KeySpace Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeyMinus
	KeyEqual
	KeyC
	KeyR
	KeyG
	KeyW
	KeyA
	KeyS
	KeyD
	keyCount
)

var keyNames = [keyCount]string{
	KeySpace: "Space",
	KeyRight: "Right",
	KeyUp:    "Up",
	KeyDown:  "Down",
	KeyTab:   "Tab",
	KeyMinus: "Minus",
	KeyEqual: "Equal",
	KeyC:     "C",
	KeyR:     "R",
	KeyG:     "G",
	KeyW:     "W",
	KeyA:     "A",
	KeyS:     "S",
	KeyD:     "D",
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Valid reports whether k is one of the declared keys.
func (k Key) Valid() bool {
	return k < keyCount
}

// KeySet holds one flag per logical key.
type KeySet [keyCount]bool

// Has reports whether k is set. Unknown keys are never set.
func (s *KeySet) Has(k Key) bool {
	return k.Valid() && s[k]
}
