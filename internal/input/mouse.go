package input

import (
	"bytes"
	"strconv"
)

// maxMouseSequence bounds how long an unfinished SGR mouse report may be
// before it is treated as garbage.
const maxMouseSequence = 32

// SGR mouse report bits.
const (
	mouseButtonMask = 0x03
	mouseMotion     = 0x20
	mouseWheel      = 0x40
)

// mouseState is the pointer as last reported by the terminal.
type mouseState struct {
	col, row int
	down     bool
	seen     bool
}

// consume parses the body of an SGR mouse report ("b;x;yM" or "b;x;ym"),
// starting right after "ESC [ <". It returns the number of bytes used and
// whether the report was complete.
func (m *mouseState) consume(body []byte) (int, bool) {
	end := bytes.IndexAny(body, "Mm")
	if end < 0 {
		return 0, false
	}

	fields := bytes.Split(body[:end], []byte{';'})
	if len(fields) != 3 {
		return end + 1, true
	}
	code, err1 := strconv.Atoi(string(fields[0]))
	col, err2 := strconv.Atoi(string(fields[1]))
	row, err3 := strconv.Atoi(string(fields[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return end + 1, true
	}

	m.col, m.row, m.seen = col, row, true
	if code&mouseWheel != 0 {
		return end + 1, true
	}

	release := body[end] == 'm'
	if code&mouseButtonMask == 0 {
		switch {
		case release:
			m.down = false
		case code&mouseMotion == 0:
			m.down = true
		}
	}
	return end + 1, true
}
