// Package melody builds the alert tone sequences and plays them on a speaker.
package melody

import (
	"github.com/chewxy/math32"
	"github.com/itohio/goplant/pkg/board"
)

const (
	// ConcertA is the reference pitch in Hz.
	ConcertA = 440
	// Length is the number of notes in one round of an alert.
	Length = 100
	// Rounds is the number of times an alert round is repeated.
	Rounds = 10
)

// Note is a single tone.
type Note struct {
	Frequency uint32 // Hz
	Duration  uint32 // Microseconds
}

// Melody is an ordered tone sequence.
type Melody []Note

// Frequency returns the equal-tempered pitch semitones away from concert A, rounded down.
func Frequency(semitones int) uint32 {
	return uint32(math32.Floor(ConcertA * math32.Pow(2, float32(semitones)/12)))
}

// NewNote creates a note lasting one period of its frequency.
func NewNote(semitones int) Note {
	f := Frequency(semitones)
	return Note{Frequency: f, Duration: 1000000 / f}
}

// Alternate builds a melody of length notes, alternating between two pitches and repeated
// rounds times.
func Alternate(a, b, length, rounds int) Melody {
	first, second := NewNote(a), NewNote(b)
	m := make(Melody, 0, length*rounds)
	for range rounds {
		for i := range length {
			if i%2 == 0 {
				m = append(m, first)
			} else {
				m = append(m, second)
			}
		}
	}
	return m
}

// WaterLow alternates A4 and A#4.
func WaterLow() Melody {
	return Alternate(0, 1, Length, Rounds)
}

// BatteryLow alternates A5 and A4.
func BatteryLow() Melody {
	return Alternate(12, 0, Length, Rounds)
}

// Duration returns the total playing time in microseconds.
func (m Melody) Duration() uint64 {
	var total uint64
	for _, n := range m {
		total += uint64(n.Duration)
	}
	return total
}

// Player plays melodies, blocking until the last note ends.
type Player struct {
	speaker board.Speaker
	delay   board.Delay
}

// NewPlayer creates a player driving speaker.
func NewPlayer(speaker board.Speaker, delay board.Delay) *Player {
	return &Player{speaker: speaker, delay: delay}
}

// Play sounds every note in order. It cannot be interrupted.
func (p *Player) Play(m Melody) {
	for _, n := range m {
		if n.Frequency == 0 {
			p.speaker.Silence()
		} else {
			p.speaker.Tone(n.Frequency)
		}
		p.delay.WaitMicroseconds(n.Duration)
		p.speaker.Silence()
	}
}
