package playback

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrInvalidSpeed is returned for non-positive playback speeds.
var ErrInvalidSpeed = errors.New("playback: speed must be positive")

// DefaultSpeed is the number of frames advanced per second.
const DefaultSpeed = 1.0

type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event is a keyboard-originated input.
type Event int

const (
	TogglePlay Event = iota
	StepBack
	StepForward
	CancelPlayback
)

func (e Event) String() string {
	switch e {
	case TogglePlay:
		return "toggle-play"
	case StepBack:
		return "step-back"
	case StepForward:
		return "step-forward"
	case CancelPlayback:
		return "cancel-playback"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

type Options struct {
	Speed  float64
	Repeat bool
}

// Controller owns the frame index and the playback timer.
type Controller struct {
	sched  Scheduler
	speed  float64
	repeat bool

	frames int // 0 while no dataset is ready
	frame  int
	timer  Timer
}

// NewController returns a stopped controller with no data. A non-positive
// speed falls back to DefaultSpeed.
func NewController(sched Scheduler, opts Options) *Controller {
	speed := opts.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Controller{sched: sched, speed: speed, repeat: opts.Repeat}
}

func (c *Controller) Frame() int     { return c.frame }
func (c *Controller) Frames() int    { return c.frames }
func (c *Controller) Ready() bool    { return c.frames > 0 }
func (c *Controller) Speed() float64 { return c.speed }
func (c *Controller) Repeat() bool   { return c.repeat }
func (c *Controller) Playing() bool  { return c.timer != nil }

// Armed returns the timer currently driving playback, or nil.
func (c *Controller) Armed() Timer { return c.timer }

// SetRepeat controls whether playback wraps at the last frame.
func (c *Controller) SetRepeat(r bool) { c.repeat = r }

func (c *Controller) State() State {
	if c.timer != nil {
		return Playing
	}
	return Stopped
}

// Interval is the time between two timer ticks.
func (c *Controller) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.speed)
}

// Load marks a dataset of n frames as ready and rewinds to frame 0.
func (c *Controller) Load(n int) {
	c.stop()
	c.frame = 0
	if n < 0 {
		n = 0
	}
	c.frames = n
}

// Unload marks the data as not ready, e.g. while another file loads.
func (c *Controller) Unload() {
	c.stop()
	c.frame = 0
	c.frames = 0
}

// Close cancels any armed timer. The controller stays usable.
func (c *Controller) Close() { c.stop() }

// Handle applies one keyboard event.
func (c *Controller) Handle(ev Event) {
	switch ev {
	case TogglePlay:
		c.TogglePlay()
	case StepBack:
		c.StepBack()
	case StepForward:
		c.StepForward()
	case CancelPlayback:
		c.stop()
	}
}

// TogglePlay starts playback when stopped and data is ready, and stops it
// when playing.
func (c *Controller) TogglePlay() {
	if c.timer != nil {
		c.stop()
		return
	}
	c.play()
}

// StepBack stops playback and moves one frame back, wrapping to the last
// frame.
func (c *Controller) StepBack() {
	c.stop()
	if !c.Ready() {
		return
	}
	c.frame = Back(c.frame, c.frames)
}

// StepForward stops playback and moves one frame forward, wrapping to the
// first frame regardless of the repeat setting.
func (c *Controller) StepForward() {
	c.stop()
	c.advance(true)
}

// Stop cancels playback without moving the frame.
func (c *Controller) Stop() { c.stop() }

// Tick handles one tick of t. It reports whether the frame changed. Ticks
// from any timer other than the armed one are ignored.
func (c *Controller) Tick(t Timer) bool {
	if t == nil || t != c.timer {
		return false
	}
	prev := c.frame
	c.advance(false)
	return c.frame != prev
}

// SetSpeed changes the advance rate, re-arming the timer when playing.
func (c *Controller) SetSpeed(speed float64) error {
	if !(speed > 0) {
		return ErrInvalidSpeed
	}
	c.speed = speed
	if c.timer != nil {
		c.play()
	}
	return nil
}

func (c *Controller) play() {
	if !c.Ready() {
		return
	}
	c.stop()
	c.timer = c.sched.Every(c.Interval())
	log.Printf("playback: armed at %v from frame %d", c.Interval(), c.frame)
}

func (c *Controller) stop() {
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
	log.Printf("playback: stopped at frame %d", c.frame)
}

func (c *Controller) advance(forced bool) {
	if !c.Ready() {
		return
	}
	next, stop := Advance(c.frame, c.frames, forced, c.repeat)
	if stop {
		c.stop()
	}
	c.frame = next
}

// Advance returns the frame after frame in a dataset of n frames. At the
// last frame it wraps to 0 when forced or repeat is set; otherwise it stays
// put and reports that playback must stop.
func Advance(frame, n int, forced, repeat bool) (next int, stop bool) {
	next = frame + 1
	if next >= n {
		if forced || repeat {
			return 0, false
		}
		return frame, true
	}
	return next, false
}

// Back returns the frame before frame, wrapping to n-1.
func Back(frame, n int) int {
	prev := frame - 1
	if prev < 0 {
		prev = n - 1
	}
	return prev
}
