// Package terminal hosts the editor in a tcell screen: it maps mouse and
// key events onto editor operations and draws the toolbar, the canvas and
// the status line.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tpaint/core"
	"tpaint/editor"
)

// Layout of the screen. Row 0 holds the toolbar and the last row the status
// line; the canvas starts at CanvasOrigin.
var CanvasOrigin = core.Point{X: 1, Y: 2}

// Session runs one editor on one screen.
//
// All editor calls happen on the goroutine running Run. Other goroutines
// hand work over with Post.
type Session struct {
	screen tcell.Screen
	editor *editor.Editor

	mounted bool
	drag    dragTracker
	inside  bool // pointer was over the canvas at the last mouse event

	onMount func()
}

// NewSession creates a session. The screen is initialized by Mount, not here.
func NewSession(screen tcell.Screen, e *editor.Editor) *Session {
	return &Session{screen: screen, editor: e}
}

// NewTerminalSession creates a session on the process's terminal.
func NewTerminalSession(e *editor.Editor) (*Session, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewSession(screen, e), nil
}

// Mounted reports whether the screen is currently initialized.
func (s *Session) Mounted() bool {
	return s.mounted
}

// SetOnMount registers f to run on the event loop once the screen is ready,
// before the first event is read.
func (s *Session) SetOnMount(f func()) {
	s.onMount = f
}

// Editor returns the editor the session drives.
func (s *Session) Editor() *editor.Editor {
	return s.editor
}

// Mount initializes the screen and starts listening for mouse events,
// including releases anywhere on the screen. The returned function undoes
// all of it and must be called exactly once.
func (s *Session) Mount() (unmount func(), err error) {
	if err := s.screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.screen.EnableMouse()
	s.screen.HideCursor()
	s.mounted = true
	core.Logger().Info("terminal mounted")

	return func() {
		// A stroke never outlives the listener that would end it.
		s.editor.PointerLeave()
		s.drag.end()
		s.screen.DisableMouse()
		s.screen.Fini()
		s.mounted = false
		core.Logger().Info("terminal unmounted")
	}, nil
}

// Post queues f to run on the event loop. It is safe to call from any
// goroutine once the session is mounted.
func (s *Session) Post(f func()) {
	if err := s.screen.PostEvent(tcell.NewEventInterrupt(f)); err != nil {
		core.Logger().Warn("event queue full, dropping posted work", "err", err)
	}
}

// Run mounts the screen and processes events until the user quits or ctx is
// cancelled. The screen is restored on every exit path.
func (s *Session) Run(ctx context.Context) error {
	unmount, err := s.Mount()
	if err != nil {
		return err
	}
	defer unmount()

	stop := context.AfterFunc(ctx, func() {
		// Wake PollEvent so the loop sees the cancellation.
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	if s.onMount != nil {
		s.onMount()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.Draw()

		ev := s.screen.PollEvent()
		if ev == nil {
			return nil // screen finalized
		}
		if s.HandleEvent(ev) {
			return nil
		}
	}
}
