package puzzle

// Colour is an RGB triple with components in [0,1].
type Colour struct {
	R, G, B float64
}

// Text alignment flags for DrawText.
const (
	AlignVNormal = 0x000
	AlignVCentre = 0x100
	AlignHLeft   = 0x000
	AlignHCentre = 0x001
	AlignHRight  = 0x002
)

// Drawing is the set of rendering primitives a host offers to modules.
// Coordinates are in host units; colours index the module's palette.
type Drawing interface {
	StartDraw()
	EndDraw()
	DrawRect(x, y, w, h, colour int)
	DrawText(x, y, align, colour int, text string)
	DrawUpdate(x, y, w, h int)
	Clip(x, y, w, h int)
	Unclip()
	// StatusBar shows a line of status text. Modules call it from Redraw.
	StatusBar(text string)
}

// Frontend is everything the engine needs from its host. It is injected at
// construction; the engine never reaches for process-wide state.
type Frontend interface {
	Drawing

	// ActivateTimer asks the host to start delivering periodic ticks.
	ActivateTimer()
	// DeactivateTimer stops the periodic ticks.
	DeactivateTimer()
	DefaultColour() Colour
	// RandomSeed returns process-wide entropy used to mint fresh seeds.
	RandomSeed() []byte
}
