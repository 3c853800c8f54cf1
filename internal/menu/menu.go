// Package menu implements the main, options and game-over screens.
package menu

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/input"
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// Type identifies a menu screen.
type Type int

const (
	Main Type = iota
	Options
	Dead
)

// String returns the screen name.
func (t Type) String() string {
	switch t {
	case Main:
		return "main"
	case Options:
		return "options"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Button labels. Clicks are dispatched on the label text.
const (
	LabelStart     = "Start Game"
	LabelPlayAgain = "Play Again"
	LabelOptions   = "Options"
	LabelExit      = "Exit"
	LabelQuit      = "Quit"
	LabelReturn    = "Return"
	LabelToMain    = "Return to Menu"
	LabelMusicOn   = "On"
	LabelMusicOff  = "Off"
)

// VolumeControl is the part of the soundtrack player the menu drives.
type VolumeControl interface {
	SetVolume(v float64)
	Volume() float64
}

type screen struct {
	title    object.Text
	captions []object.Text
	buttons  []*Button
}

// Menu is the screen-state machine shown while the game is not running.
type Menu struct {
	typ      Type
	previous Type
	screens  map[Type]*screen
	music    *Button

	started bool
	quit    bool
	musicOn bool
	wasDown bool

	volume  VolumeControl
	fullVol float64
	logger  *log.Logger
}

// New builds the three screens for the arena in cfg and opens the main menu.
func New(cfg config.Config, volume VolumeControl, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.Default()
	}
	w, h := cfg.Arena.Width, cfg.Arena.Height
	hud := cfg.HUD

	title := func(s string) object.Text {
		return object.Text{Value: s, Position: physics.Vec{X: w / 2, Y: 100}, Size: hud.TitleSize, Centered: true}
	}
	button := func(label string, x, y float64) *Button {
		return &Button{Label: label, Position: physics.Vec{X: x, Y: y}, Size: hud.ButtonSize}
	}
	column := func(labels ...string) []*Button {
		buttons := make([]*Button, len(labels))
		for i, l := range labels {
			buttons[i] = button(l, w/2, 300+float64(i)*100)
		}
		return buttons
	}

	m := &Menu{
		volume:  volume,
		fullVol: cfg.Audio.Volume,
		musicOn: cfg.Audio.Volume > 0,
		logger:  logger,
	}
	if m.fullVol <= 0 {
		m.fullVol = 100
	}

	musicLabel := LabelMusicOn
	if !m.musicOn {
		musicLabel = LabelMusicOff
	}
	m.music = button(musicLabel, w*3/4, 300)

	m.screens = map[Type]*screen{
		Main: {
			title: title("Space Ratao"),
			captions: []object.Text{
				{Value: "Version: Beta 1.0", Position: physics.Vec{X: 20, Y: h - 80}, Size: hud.CaptionSize},
				{Value: "Made by Rodrigo Z Silveira", Position: physics.Vec{X: 20, Y: h - 40}, Size: hud.CaptionSize},
			},
			buttons: column(LabelStart, LabelOptions, LabelExit),
		},
		Options: {
			title: title("Options"),
			captions: []object.Text{
				{Value: "Music:", Position: physics.Vec{X: w / 4, Y: 300}, Size: hud.ButtonSize, Centered: true},
			},
			buttons: []*Button{m.music, button(LabelReturn, w/2, 500)},
		},
		Dead: {
			title:   title("You Died!"),
			buttons: column(LabelPlayAgain, LabelOptions, LabelToMain),
		},
	}
	return m
}

// SetType switches screens, remembering the one being left.
func (m *Menu) SetType(t Type) {
	if t != m.typ {
		m.previous = m.typ
	}
	m.typ = t
}

// Type returns the current screen.
func (m *Menu) Type() Type {
	return m.typ
}

// Started reports whether the player asked to start a run.
func (m *Menu) Started() bool {
	return m.started
}

// SetStarted marks the run as started or stopped.
func (m *Menu) SetStarted(started bool) {
	m.started = started
}

// QuitRequested reports whether the player asked to close the game.
func (m *Menu) QuitRequested() bool {
	return m.quit
}

// MusicOn reports whether the soundtrack is enabled.
func (m *Menu) MusicOn() bool {
	return m.musicOn
}

// Buttons returns the buttons of the current screen.
func (m *Menu) Buttons() []*Button {
	return m.screens[m.typ].buttons
}

// HandleInput updates hover state and activates the button under the
// cursor on the frame the primary button goes down.
func (m *Menu) HandleInput(in input.Input, measurer object.Measurer) {
	pressed := in.MouseDown && !m.wasDown
	m.wasDown = in.MouseDown

	var clicked *Button
	for _, b := range m.Buttons() {
		b.Hovered = in.HasCursor && b.Contains(measurer, in.Cursor)
		if pressed && b.Hovered && clicked == nil {
			clicked = b
		}
	}
	if clicked != nil {
		m.handleClick(clicked)
	}
}

func (m *Menu) handleClick(b *Button) {
	m.logger.Debug("menu click", "screen", m.typ, "button", b.Label)

	switch b.Label {
	case LabelStart, LabelPlayAgain:
		m.started = true
	case LabelOptions:
		m.SetType(Options)
	case LabelReturn:
		m.SetType(m.previous)
	case LabelToMain:
		m.SetType(Main)
	case LabelExit, LabelQuit:
		m.quit = true
	case LabelMusicOn:
		m.setMusic(false)
	case LabelMusicOff:
		m.setMusic(true)
	}
}

func (m *Menu) setMusic(on bool) {
	m.musicOn = on
	if on {
		m.music.Label = LabelMusicOn
		m.volume.SetVolume(m.fullVol)
	} else {
		m.music.Label = LabelMusicOff
		m.volume.SetVolume(0)
	}
}

// Draw renders the current screen.
func (m *Menu) Draw(s object.Surface) {
	sc := m.screens[m.typ]
	s.DrawText(sc.title)
	for _, c := range sc.captions {
		s.DrawText(c)
	}
	for _, b := range sc.buttons {
		s.DrawText(b.Text())
	}
}
