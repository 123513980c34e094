package stream

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/matt-g-everett/ledprog/program"
)

// Controller that manages programs and the transitions between them.
type Controller struct {
	mu sync.Mutex

	library     *Library
	numPixels   int
	program     program.Program
	programName string
	next        program.Program
	nextName    string

	transition          float64
	transitionIncrement float64
	cycleTime           time.Duration

	playlist *Playlist
	slot     int
}

// NewController creates an instance of a Controller showing the first program
// in the library, or nothing if the library is empty. A positive Bpm sets the
// cycle time to one beat, overriding CycleSecs.
func NewController(strip StripConfig, library *Library, runtimeMs int64) *Controller {
	c := new(Controller)
	c.library = library
	c.numPixels = strip.Pixels
	c.cycleTime = time.Duration(strip.CycleSecs * float64(time.Second))
	if strip.Bpm > 0 {
		c.cycleTime = time.Duration(60.0 / strip.Bpm * float64(time.Second))
	}

	if strip.TransitionSecs > 0 && strip.FrameRate > 0 {
		c.transitionIncrement = 1.0 / (strip.FrameRate * strip.TransitionSecs)
	}

	c.program = program.NewSolid(program.Color{}, program.Range{})
	if library.Len() > 0 {
		name := library.Names()[0]
		p, _ := library.Get(name)
		p.Restart(runtimeMs)
		c.program = p
		c.programName = name
	}

	return c
}

// SetPlaylist makes Cycle step through pl instead of the library, starting
// with its first slot. A nil or empty playlist restores library order.
func (c *Controller) SetPlaylist(pl *Playlist, runtimeMs int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pl == nil || pl.Len() == 0 {
		c.playlist = nil
		return nil
	}
	c.playlist = pl
	c.slot = 0
	return c.selectLocked(pl.At(0), runtimeMs)
}

// Current returns the name of the program being shown, or being transitioned to.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.currentLocked()
}

func (c *Controller) currentLocked() string {
	if c.next != nil {
		return c.nextName
	}
	return c.programName
}

// Select starts a transition to the named program, restarting its time base at runtimeMs.
// Selecting the program already being faded in does nothing; selecting the one
// being faded out reverses the fade.
func (c *Controller) Select(name string, runtimeMs int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selectLocked(name, runtimeMs)
}

func (c *Controller) selectLocked(name string, runtimeMs int64) error {
	p, err := c.library.Get(name)
	if err != nil {
		return err
	}

	if c.next != nil {
		switch name {
		case c.nextName:
			return nil
		case c.programName:
			c.program, c.next = c.next, c.program
			c.programName, c.nextName = c.nextName, c.programName
			c.transition = 1.0 - c.transition
			programSwitches.WithLabelValues(name).Inc()
			log.Printf("Reversing to program %s", name)
			return nil
		}
	}

	p.Restart(runtimeMs)
	programSwitches.WithLabelValues(name).Inc()
	log.Printf("Switching to program %s", name)

	if c.transitionIncrement <= 0 {
		c.program = p
		c.programName = name
		c.next = nil
		c.nextName = ""
		c.transition = 0.0
		return nil
	}

	c.next = p
	c.nextName = name
	c.transition = 0.0
	return nil
}

// Cycle moves on to the next playlist slot, or the next program in the
// library when there is no playlist. A slot repeating the current program
// keeps it running.
func (c *Controller) Cycle(runtimeMs int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var name string
	if c.playlist != nil {
		c.slot = (c.slot + 1) % c.playlist.Len()
		name = c.playlist.At(c.slot)
		if name == c.currentLocked() {
			return nil
		}
	} else {
		name = c.library.Next(c.currentLocked())
	}
	if name == "" {
		return nil
	}
	return c.selectLocked(name, runtimeMs)
}

// CalculateFrame renders the frame at runtimeMs, advancing any transition by one step.
func (c *Controller) CalculateFrame(runtimeMs int64) *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.next == nil {
		return RenderFrame(c.program, runtimeMs, c.numPixels)
	}

	f1 := RenderFrame(c.program, runtimeMs, c.numPixels)
	f2 := RenderFrame(c.next, runtimeMs, c.numPixels)
	f := f1.InterpolateFrame(f2, c.transition)
	c.transition += c.transitionIncrement

	if c.transition >= 1.0 {
		c.program = c.next
		c.programName = c.nextName
		c.next = nil
		c.nextName = ""
		c.transition = 0.0
	}

	return f
}

// Run causes the Controller to cycle through programs until ctx is done.
// It only blocks if no cycle time is configured.
func (c *Controller) Run(ctx context.Context, clock Clock) {
	if c.cycleTime <= 0 {
		<-ctx.Done()
		return
	}

	cycleTimer := time.NewTicker(c.cycleTime)
	defer cycleTimer.Stop()
	for {
		select {
		case <-cycleTimer.C:
			if err := c.Cycle(clock()); err != nil {
				log.Printf("Cycle failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
