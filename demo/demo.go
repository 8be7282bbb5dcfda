package demo

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tpaint/core"
)

// Command represents a single demo command. Coordinates are grid cells.
type Command struct {
	Type      string `json:"type" toml:"type"`                               // "down", "move", "up", "leave", "set", "tool", "swatch", "key", "pause"
	X         int    `json:"x,omitempty" toml:"x,omitempty"`                 // cell column for down/move
	Y         int    `json:"y,omitempty" toml:"y,omitempty"`                 // cell row for down/move
	Button    string `json:"button,omitempty" toml:"button,omitempty"`       // "primary" (default), "secondary" or "other"
	Field     string `json:"field,omitempty" toml:"field,omitempty"`         // field name for set
	Value     string `json:"value,omitempty" toml:"value,omitempty"`         // field value, tool name or keys
	Index     int    `json:"index,omitempty" toml:"index,omitempty"`         // swatch index
	Secondary bool   `json:"secondary,omitempty" toml:"secondary,omitempty"` // swatch goes to the secondary slot
	Delay     int    `json:"delay,omitempty" toml:"delay,omitempty"`         // base delay in milliseconds
	Variance  int    `json:"variance,omitempty" toml:"variance,omitempty"`   // random variance in ms (±variance)
}

// Script represents a demo script
type Script struct {
	Name         string    `json:"name" toml:"name"`
	Description  string    `json:"description" toml:"description"`
	Commands     []Command `json:"commands" toml:"commands"`
	BaseDelay    int       `json:"base_delay" toml:"base_delay"`       // default delay between commands
	BaseVariance int       `json:"base_variance" toml:"base_variance"` // default variance
}

// Target receives the actions a script performs. The editor satisfies it.
type Target interface {
	PointerDown(p core.Point, button core.Button)
	PointerMove(p core.Point)
	PointerUp()
	PointerLeave()
	SetField(name, value string) error
	SetTool(t core.Tool)
	SelectSwatch(i int, primary bool)
	HandleKey(key rune) bool
}

// LoadScript reads a script from a .json or .toml file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read demo script: %w", err)
	}
	return ParseScript(path, data)
}

// ParseScript decodes a script. The name's extension picks the syntax:
// TOML for .toml, JSON otherwise.
func ParseScript(name string, data []byte) (*Script, error) {
	var script Script
	var err error
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		err = toml.Unmarshal(data, &script)
	} else {
		err = json.Unmarshal(data, &script)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse demo script: %w", err)
	}

	// Set defaults
	if script.BaseDelay == 0 {
		script.BaseDelay = 60 // 60ms default, strokes need many moves
	}
	if script.BaseVariance == 0 {
		script.BaseVariance = 20 // ±20ms default
	}

	return &script, nil
}

func parseButton(s string) (core.Button, error) {
	switch strings.ToLower(s) {
	case "", "primary", "left":
		return core.ButtonPrimary, nil
	case "secondary", "right":
		return core.ButtonSecondary, nil
	case "other", "middle":
		return core.ButtonOther, nil
	default:
		return core.ButtonPrimary, fmt.Errorf("unknown button %q", s)
	}
}

// Apply performs one command on target. "pause" does nothing. Key commands
// stop early if a key asks to quit.
func Apply(cmd Command, target Target) error {
	p := core.Point{X: cmd.X, Y: cmd.Y}

	switch cmd.Type {
	case "down":
		button, err := parseButton(cmd.Button)
		if err != nil {
			return err
		}
		target.PointerDown(p, button)
	case "move":
		target.PointerMove(p)
	case "up":
		target.PointerUp()
	case "leave":
		target.PointerLeave()
	case "set":
		return target.SetField(cmd.Field, cmd.Value)
	case "tool":
		tool, ok := core.ParseTool(cmd.Value)
		if !ok {
			return fmt.Errorf("unknown tool %q", cmd.Value)
		}
		target.SetTool(tool)
	case "swatch":
		target.SelectSwatch(cmd.Index, !cmd.Secondary)
	case "key":
		for _, ch := range cmd.Value {
			if target.HandleKey(ch) {
				break
			}
		}
	case "pause":
	default:
		return fmt.Errorf("unknown command type %q", cmd.Type)
	}
	return nil
}

// PlayInstant runs every command immediately, without delays. It stops at
// the first command that fails.
func PlayInstant(script *Script, target Target) error {
	for i, cmd := range script.Commands {
		if err := Apply(cmd, target); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Type, err)
		}
	}
	return nil
}

// Player plays back demo scripts in real time
type Player struct {
	script    *Script
	post      func(func())
	stopChan  chan struct{}
	isPlaying atomic.Bool
	started   atomic.Bool
	stopOnce  sync.Once
	done      chan struct{}
}

// NewPlayer creates a new demo player. Every command is handed to post,
// which must run it on the goroutine that owns the target.
// A nil post runs commands on the player's own goroutine.
func NewPlayer(script *Script, post func(func())) *Player {
	if post == nil {
		post = func(f func()) { f() }
	}
	return &Player{
		script:   script,
		post:     post,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Play starts playing the script against target
func (p *Player) Play(target Target) error {
	if p.script == nil {
		return fmt.Errorf("no script loaded")
	}
	if !p.started.CompareAndSwap(false, true) {
		return fmt.Errorf("player already started")
	}
	p.isPlaying.Store(true)

	go p.playScript(target)
	return nil
}

// Stop stops the current playback and waits for it to wind down
func (p *Player) Stop() {
	if !p.started.Load() {
		return
	}
	p.stopOnce.Do(func() { close(p.stopChan) })
	<-p.done
}

// IsPlaying returns whether a demo is currently playing
func (p *Player) IsPlaying() bool {
	return p.isPlaying.Load()
}

// Done is closed when playback finishes or is stopped
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// playScript executes the script commands
func (p *Player) playScript(target Target) {
	defer func() {
		p.isPlaying.Store(false)
		close(p.done)
	}()

	for i, cmd := range p.script.Commands {
		// Calculate delay with variance
		delay := cmd.Delay
		if delay == 0 {
			delay = p.script.BaseDelay
		}

		variance := cmd.Variance
		if variance == 0 {
			variance = p.script.BaseVariance
		}

		// Add random variance for natural feel
		if variance > 0 {
			delay += rand.Intn(variance*2) - variance // ±variance
		}

		// Ensure minimum delay
		if delay < 10 {
			delay = 10
		}

		p.post(func() {
			if err := Apply(cmd, target); err != nil {
				core.Logger().Warn("demo command failed", "index", i, "type", cmd.Type, "err", err)
			}
		})

		// Wait before next command
		select {
		case <-p.stopChan:
			return
		case <-time.After(time.Duration(delay) * time.Millisecond):
		}
	}
}

// GenerateExample creates an example demo script: a red frame with a
// diagonal, then a little erasing.
func GenerateExample() string {
	script := Script{
		Name:         "Frame Demo",
		Description:  "Draws a red frame with a blue diagonal, then erases a corner",
		BaseDelay:    60,
		BaseVariance: 20,
		Commands: []Command{
			{Type: "set", Field: "brushWidth", Value: "1", Delay: 400},
			{Type: "swatch", Index: 9},
			{Type: "swatch", Index: 12, Secondary: true},

			{Type: "down", X: 2, Y: 2},
			{Type: "move", X: 20, Y: 2},
			{Type: "move", X: 20, Y: 12},
			{Type: "move", X: 2, Y: 12},
			{Type: "move", X: 2, Y: 2},
			{Type: "up", Delay: 300},

			{Type: "down", X: 3, Y: 3, Button: "secondary"},
			{Type: "move", X: 19, Y: 11},
			{Type: "up", Delay: 300},

			{Type: "tool", Value: "rubber"},
			{Type: "set", Field: "brushWidth", Value: "3"},
			{Type: "set", Field: "brushHeight", Value: "3"},
			{Type: "down", X: 20, Y: 12},
			{Type: "up"},
			{Type: "leave"},

			{Type: "pause", Delay: 2000}, // Pause to show result
		},
	}

	data, _ := json.MarshalIndent(script, "", "  ")
	return string(data)
}
