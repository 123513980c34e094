package stream

import (
	"github.com/pkg/errors"
)

// Playlist is a looping order of programs. Each slot lasts one cycle.
type Playlist struct {
	slots []string
}

// BuildPlaylist expands entries into slots, checking every program exists.
// An entry with zero cycles plays once.
func BuildPlaylist(entries []PlaylistEntry, library *Library) (*Playlist, error) {
	pl := new(Playlist)
	for i, e := range entries {
		if _, err := library.Get(e.Program); err != nil {
			return nil, errors.Wrapf(err, "playlist entry %d", i)
		}
		if e.Cycles < 0 {
			return nil, errors.Errorf("playlist entry %d (%s): negative cycles", i, e.Program)
		}
		cycles := e.Cycles
		if cycles == 0 {
			cycles = 1
		}
		for j := 0; j < cycles; j++ {
			pl.slots = append(pl.slots, e.Program)
		}
	}
	return pl, nil
}

// Len returns the number of slots.
func (pl *Playlist) Len() int {
	return len(pl.slots)
}

// At returns the program in slot i, wrapping around.
func (pl *Playlist) At(i int) string {
	return pl.slots[i%len(pl.slots)]
}
