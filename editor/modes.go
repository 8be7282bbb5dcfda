package editor

// Mode represents the current editing mode
type Mode int

const (
	ModeNormal  Mode = iota // Painting with the mouse, single-key shortcuts
	ModeCommand             // Command input mode
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// SetMode changes the editor mode
func (e *Editor) SetMode(mode Mode) {
	e.mode = mode

	// Command mode always starts with an empty line
	if mode == ModeCommand {
		e.commandBuffer = []rune{}
	}
}
