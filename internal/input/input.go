// Package input turns a raw terminal byte stream into per-frame input state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/spaceship/internal/physics"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, never releases.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Up        bool
	Down      bool
	Left      bool
	Right     bool
	Fire      bool        // keyboard fire or primary mouse button
	MouseDown bool        // primary mouse button currently held
	Quit      bool
	Cursor    physics.Vec // pointer position in arena coordinates
	HasCursor bool        // false until the pointer has been reported
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key and mouse state
// between frames.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // unfinished escape sequence carried to the next frame
	mouse   mouseState
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// CellMapper converts a 1-based terminal cell to arena coordinates.
type CellMapper func(col, row int) physics.Vec

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the input state for this frame.
func ReadInput(s *Stream, toArena CellMapper) Input {
	return s.read(time.Now(), toArena)
}

func (s *Stream) read(now time.Time, toArena CellMapper) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.parse(buf, now)

	in := Input{
		Quit:      s.closed || now.Sub(s.state.quit) < keyHoldDuration,
		Left:      now.Sub(s.state.left) < keyHoldDuration,
		Right:     now.Sub(s.state.right) < keyHoldDuration,
		Up:        now.Sub(s.state.up) < keyHoldDuration,
		Down:      now.Sub(s.state.down) < keyHoldDuration,
		MouseDown: s.mouse.down,
	}
	in.Fire = in.MouseDown || now.Sub(s.state.fire) < keyHoldDuration
	if s.mouse.seen && toArena != nil {
		in.Cursor = toArena(s.mouse.col, s.mouse.row)
		in.HasCursor = true
	}
	return in
}

// parse updates key and mouse state from the collected bytes. An escape
// sequence cut off at the end of buf is kept for the next frame.
func (s *Stream) parse(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByteToState(&s.state, b, now)
			continue
		}

		if i+1 >= len(buf) {
			s.keep(buf[i:])
			return
		}
		if buf[i+1] != '[' {
			continue // bare escape
		}
		if i+2 >= len(buf) {
			s.keep(buf[i:])
			return
		}

		// CSI sequence: ESC [ <code>
		switch buf[i+2] {
		case 'A': // Up arrow
			s.state.up = now
			i += 2
		case 'B': // Down arrow
			s.state.down = now
			i += 2
		case 'C': // Right arrow
			s.state.right = now
			i += 2
		case 'D': // Left arrow
			s.state.left = now
			i += 2
		case '<':
			n, complete := s.mouse.consume(buf[i+3:])
			if !complete {
				if len(buf)-i <= maxMouseSequence {
					s.keep(buf[i:])
				}
				return
			}
			i += 2 + n
		default:
			i++
		}
	}
}

func (s *Stream) keep(rest []byte) {
	s.pending = append([]byte(nil), rest...)
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case 'w', 'W':
		state.up = now
	case 's', 'S':
		state.down = now
	case ' ':
		state.fire = now
	}
}
