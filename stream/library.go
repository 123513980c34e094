package stream

import (
	"github.com/matt-g-everett/ledprog/program"
	"github.com/pkg/errors"
)

// ErrUnknownProgram is returned when a program name is not in the library.
var ErrUnknownProgram = errors.New("unknown program")

// Library is an ordered set of named programs.
type Library struct {
	names    []string
	programs map[string]program.Restarter
}

// NewLibrary creates an empty Library.
func NewLibrary() *Library {
	l := new(Library)
	l.programs = make(map[string]program.Restarter)
	return l
}

// Add appends a program. Names must be unique and non-empty.
func (l *Library) Add(name string, p program.Restarter) error {
	if name == "" {
		return errors.New("program name is empty")
	}
	if _, found := l.programs[name]; found {
		return errors.Errorf("duplicate program %q", name)
	}
	l.names = append(l.names, name)
	l.programs[name] = p
	return nil
}

// Get looks up a program by name.
func (l *Library) Get(name string) (program.Restarter, error) {
	p, found := l.programs[name]
	if !found {
		return nil, errors.Wrapf(ErrUnknownProgram, "%q", name)
	}
	return p, nil
}

// Names returns the program names in order.
func (l *Library) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len returns the number of programs.
func (l *Library) Len() int {
	return len(l.names)
}

// Next returns the name after name, wrapping around. An unknown name gives the first program.
func (l *Library) Next(name string) string {
	if len(l.names) == 0 {
		return ""
	}
	for i, n := range l.names {
		if n == name {
			return l.names[(i+1)%len(l.names)]
		}
	}
	return l.names[0]
}
