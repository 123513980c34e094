package stream

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledprog/animation"
	"github.com/matt-g-everett/ledprog/program"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidProgram(r, g, b uint8) *program.AnimatedProgram {
	p := program.NewAnimatedProgram()
	p.SetColor(r, g, b)
	p.SetSegments([]program.Segment{{From: animation.Constant(0), To: animation.Constant(1)}})
	return p
}

func testLibrary(t *testing.T) *Library {
	l := NewLibrary()
	require.NoError(t, l.Add("red", solidProgram(255, 0, 0)))
	require.NoError(t, l.Add("blue", solidProgram(0, 0, 255)))
	return l
}

func TestControllerStartsWithFirstProgram(t *testing.T) {
	c := NewController(StripConfig{Pixels: 2, FrameRate: 10}, testLibrary(t), 0)

	assert.Equal(t, "red", c.Current())
	f := c.CalculateFrame(0)
	assert.Equal(t, colorful.Color{R: 1}, f.Pixel(0))
}

func TestControllerEmptyLibraryIsDark(t *testing.T) {
	c := NewController(StripConfig{Pixels: 3, FrameRate: 10}, NewLibrary(), 0)

	assert.Equal(t, "", c.Current())
	f := c.CalculateFrame(100)
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, colorful.Color{}, f.Pixel(i))
	}
	assert.NoError(t, c.Cycle(100))
}

func TestControllerSelectWithoutTransition(t *testing.T) {
	c := NewController(StripConfig{Pixels: 2, FrameRate: 10}, testLibrary(t), 0)

	require.NoError(t, c.Select("blue", 50))
	assert.Equal(t, "blue", c.Current())
	assert.Equal(t, colorful.Color{B: 1}, c.CalculateFrame(60).Pixel(1))
}

func TestControllerSelectRestartsTimeBase(t *testing.T) {
	l := testLibrary(t)
	c := NewController(StripConfig{Pixels: 2, FrameRate: 10}, l, 0)

	require.NoError(t, c.Select("blue", 1234))
	p, err := l.Get("blue")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), p.TimeBase())
}

func TestControllerSelectUnknown(t *testing.T) {
	c := NewController(StripConfig{Pixels: 2, FrameRate: 10}, testLibrary(t), 0)

	err := c.Select("green", 0)
	assert.True(t, errors.Is(err, ErrUnknownProgram))
	assert.Equal(t, "red", c.Current())
}

func TestControllerTransition(t *testing.T) {
	// Two frames per transition.
	c := NewController(StripConfig{Pixels: 1, FrameRate: 2, TransitionSecs: 1}, testLibrary(t), 0)

	require.NoError(t, c.Select("blue", 0))
	assert.Equal(t, "blue", c.Current())

	f := c.CalculateFrame(0)
	assert.Equal(t, colorful.Color{R: 1}, f.Pixel(0))

	f = c.CalculateFrame(500)
	assert.InDelta(t, 0.5, f.Pixel(0).R, 1e-9)
	assert.InDelta(t, 0.5, f.Pixel(0).B, 1e-9)

	f = c.CalculateFrame(1000)
	assert.Equal(t, colorful.Color{B: 1}, f.Pixel(0))
}

func TestControllerCycle(t *testing.T) {
	c := NewController(StripConfig{Pixels: 1, FrameRate: 10}, testLibrary(t), 0)

	require.NoError(t, c.Cycle(0))
	assert.Equal(t, "blue", c.Current())
	require.NoError(t, c.Cycle(0))
	assert.Equal(t, "red", c.Current())
}

func TestControllerRunCycles(t *testing.T) {
	c := NewController(StripConfig{Pixels: 1, FrameRate: 10, CycleSecs: 0.01}, testLibrary(t), 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, func() int64 { return 0 })
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.Current() == "blue" }, time.Second, time.Millisecond)
	cancel()
	<-done
}

func TestControllerRunWithoutCycleWaitsForCancel(t *testing.T) {
	c := NewController(StripConfig{Pixels: 1, FrameRate: 10}, testLibrary(t), 0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	c.Run(ctx, func() int64 { return 0 })
	assert.Equal(t, "red", c.Current())
}

func TestControllerReselectOutgoingReversesTransition(t *testing.T) {
	// Four frames per transition.
	l := testLibrary(t)
	c := NewController(StripConfig{Pixels: 1, FrameRate: 4, TransitionSecs: 1}, l, 0)
	red, err := l.Get("red")
	require.NoError(t, err)

	require.NoError(t, c.Select("blue", 0))
	c.CalculateFrame(0)
	f := c.CalculateFrame(250)
	assert.InDelta(t, 0.75, f.Pixel(0).R, 1e-9)
	assert.InDelta(t, 0.25, f.Pixel(0).B, 1e-9)

	require.NoError(t, c.Select("red", 300))
	assert.Equal(t, "red", c.Current())
	assert.Equal(t, int64(0), red.TimeBase())

	f = c.CalculateFrame(500)
	assert.InDelta(t, 0.5, f.Pixel(0).R, 1e-9)
	assert.InDelta(t, 0.5, f.Pixel(0).B, 1e-9)

	f = c.CalculateFrame(750)
	assert.InDelta(t, 0.75, f.Pixel(0).R, 1e-9)
	assert.InDelta(t, 0.25, f.Pixel(0).B, 1e-9)

	c.CalculateFrame(1000)
	assert.Equal(t, colorful.Color{R: 1}, c.CalculateFrame(1250).Pixel(0))
}

func TestControllerReselectIncomingIsNoop(t *testing.T) {
	l := testLibrary(t)
	c := NewController(StripConfig{Pixels: 1, FrameRate: 4, TransitionSecs: 1}, l, 0)
	blue, err := l.Get("blue")
	require.NoError(t, err)

	require.NoError(t, c.Select("blue", 100))
	c.CalculateFrame(100)
	c.CalculateFrame(350)

	require.NoError(t, c.Select("blue", 400))
	assert.Equal(t, int64(100), blue.TimeBase())

	f := c.CalculateFrame(600)
	assert.InDelta(t, 0.5, f.Pixel(0).R, 1e-9)
	assert.InDelta(t, 0.5, f.Pixel(0).B, 1e-9)
}

func TestControllerPlaylist(t *testing.T) {
	l := testLibrary(t)
	c := NewController(StripConfig{Pixels: 1, FrameRate: 10}, l, 0)
	pl, err := BuildPlaylist([]PlaylistEntry{
		{Program: "blue", Cycles: 2},
		{Program: "red", Cycles: 1},
	}, l)
	require.NoError(t, err)

	require.NoError(t, c.SetPlaylist(pl, 10))
	assert.Equal(t, "blue", c.Current())

	blue, err := l.Get("blue")
	require.NoError(t, err)
	require.NoError(t, c.Cycle(20))
	assert.Equal(t, "blue", c.Current())
	assert.Equal(t, int64(10), blue.TimeBase())

	require.NoError(t, c.Cycle(30))
	assert.Equal(t, "red", c.Current())
	require.NoError(t, c.Cycle(40))
	assert.Equal(t, "blue", c.Current())
	assert.Equal(t, int64(40), blue.TimeBase())

	require.NoError(t, c.SetPlaylist(nil, 50))
	require.NoError(t, c.Cycle(50))
	assert.Equal(t, "red", c.Current())
}

func TestControllerBpmSetsCycleTime(t *testing.T) {
	c := NewController(StripConfig{Pixels: 1, FrameRate: 10, CycleSecs: 5, Bpm: 120}, testLibrary(t), 0)
	assert.Equal(t, 500*time.Millisecond, c.cycleTime)
}

func TestControllerCycleAndSelectRace(t *testing.T) {
	c := NewController(StripConfig{Pixels: 1, FrameRate: 10}, testLibrary(t), 0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, c.Cycle(int64(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, c.Select("red", int64(i)))
		}
	}()
	wg.Wait()

	assert.Contains(t, []string{"red", "blue"}, c.Current())
}
