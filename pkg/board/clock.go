package board

import (
	"sync"
	"time"
)

// RTC is a wall-clock backed real-time clock that can be loaded with a time of day.
type RTC struct {
	mu     sync.Mutex
	base   uint32
	loaded time.Time
	now    func() time.Time
}

// NewRTC creates an RTC reading start seconds now.
func NewRTC(start uint32) *RTC {
	r := &RTC{now: time.Now}
	r.SetSeconds(start)
	return r
}

// Seconds returns the seconds since midnight.
func (r *RTC) Seconds() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	elapsed := uint32(r.now().Sub(r.loaded) / time.Second)
	return (r.base + elapsed) % SecondsPerDay
}

// SetSeconds loads the counter.
func (r *RTC) SetSeconds(s uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = s
	r.loaded = r.now()
}

// SleepDelay waits on the wall clock.
type SleepDelay struct{}

// WaitMicroseconds sleeps for us microseconds.
func (SleepDelay) WaitMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
