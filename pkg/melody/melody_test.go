package melody

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency(t *testing.T) {
	tests := []struct {
		semitones int
		want      uint32
	}{
		{0, 440},
		{1, 466},
		{12, 880},
		{-12, 220},
		{3, 523},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Frequency(tt.semitones), "semitones %d", tt.semitones)
	}
}

func TestNewNote(t *testing.T) {
	n := NewNote(0)

	assert.Equal(t, uint32(440), n.Frequency)
	assert.Equal(t, uint32(2272), n.Duration)
}

func TestWaterLow(t *testing.T) {
	m := WaterLow()

	require.Len(t, m, Length*Rounds)
	assert.Equal(t, uint32(440), m[0].Frequency)
	assert.Equal(t, uint32(466), m[1].Frequency)
	assert.Equal(t, uint32(440), m[Length].Frequency)
}

func TestBatteryLow(t *testing.T) {
	m := BatteryLow()

	require.Len(t, m, Length*Rounds)
	assert.Equal(t, uint32(880), m[0].Frequency)
	assert.Equal(t, uint32(440), m[1].Frequency)
	assert.Equal(t, uint64(500*(1136+2272)), m.Duration())
}

type recorder struct {
	events []uint32 // tone frequency, 0 for silence
	waited []uint32
}

func (r *recorder) Tone(hz uint32)              { r.events = append(r.events, hz) }
func (r *recorder) Silence()                    { r.events = append(r.events, 0) }
func (r *recorder) WaitMicroseconds(us uint32) { r.waited = append(r.waited, us) }

func TestPlayer_Play(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(rec, rec)

	p.Play(Alternate(12, 0, 2, 1))

	assert.Equal(t, []uint32{880, 0, 440, 0}, rec.events)
	assert.Equal(t, []uint32{1136, 2272}, rec.waited)
}

func TestPlayer_Rest(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(rec, rec)

	p.Play(Melody{{Frequency: 0, Duration: 100}})

	assert.Equal(t, []uint32{0, 0}, rec.events)
	assert.Equal(t, []uint32{100}, rec.waited)
}
