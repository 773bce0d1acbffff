package puzzle

// Button is an input event code. Printable keys use their character value;
// pointer and cursor events use the constants below.
type Button int

const (
	LeftButton Button = 0x1000 + iota
	MiddleButton
	RightButton
	LeftDrag
	MiddleDrag
	RightDrag
	LeftRelease
	MiddleRelease
	RightRelease
	CursorUp
	CursorDown
	CursorLeft
	CursorRight
	CursorSelect
	CursorSelect2
)

// Modifier bits that may be OR'd onto any button.
const (
	ModCtrl      Button = 0x10000000
	ModShift     Button = 0x20000000
	ModNumKeypad Button = 0x40000000
	ModMask      Button = 0x70000000
)

// Ctrl returns the control-key code for a letter, e.g. Ctrl('z') == 0x1A.
func Ctrl(c rune) Button {
	return Button(c & 0x1F)
}

// Unmodified strips the modifier bits.
func (b Button) Unmodified() Button {
	return b &^ ModMask
}

// IsMouseDown reports whether b is one of the three button presses.
func IsMouseDown(b Button) bool {
	return uint(b-LeftButton) <= uint(RightButton-LeftButton)
}

func IsMouseDrag(b Button) bool {
	return uint(b-LeftDrag) <= uint(RightDrag-LeftDrag)
}

func IsMouseRelease(b Button) bool {
	return uint(b-LeftRelease) <= uint(RightRelease-LeftRelease)
}

func IsCursorMove(b Button) bool {
	b = b.Unmodified()
	return b == CursorUp || b == CursorDown || b == CursorLeft || b == CursorRight
}

// DragOf maps a press to the matching drag code.
func DragOf(press Button) Button {
	return press + (LeftDrag - LeftButton)
}

// ReleaseOf maps a press to the matching release code.
func ReleaseOf(press Button) Button {
	return press + (LeftRelease - LeftButton)
}

// Flags carries per-module behaviour bits.
type Flags uint32

// ButtonBeats returns the flag bit meaning "if button x is held, a press of
// button y is ignored". Only the three mouse buttons take part.
func ButtonBeats(x, y Button) Flags {
	xi, yi := int(x-LeftButton), int(y-LeftButton)
	if xi < 0 || xi > 2 || yi < 0 || yi > 2 {
		return 0
	}
	return 1 << uint(xi*3+yi)
}
