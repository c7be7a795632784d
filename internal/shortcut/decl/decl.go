// Package decl loads keyboard-shortcut declarations from TOML and applies
// them to a shortcut.Manager.
//
// A declaration file lists actions and the keystrokes bound to them:
//
//	[[binding]]
//	action = "file.save"
//	keys = ["ctrl+s", "F2"]
//	description = "Save the current file"
//
// An action may appear in several entries; all of its keys bind the same
// handler identity.
package decl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/shortcut"
)

// ErrInvalidBinding indicates a declaration that cannot be applied.
var ErrInvalidBinding = errors.New("invalid binding")

// BindingError identifies the offending declaration.
type BindingError struct {
	Index  int
	Action string
	Reason string
}

func (e *BindingError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("binding %d (%s): %s", e.Index, e.Action, e.Reason)
	}
	return fmt.Sprintf("binding %d: %s", e.Index, e.Reason)
}

// Unwrap returns ErrInvalidBinding.
func (e *BindingError) Unwrap() error {
	return ErrInvalidBinding
}

// Binding declares the keys of one action.
type Binding struct {
	Action      string   `toml:"action"`
	Keys        []string `toml:"keys"`
	Description string   `toml:"description,omitempty"`
}

// File is a set of declarations.
type File struct {
	Bindings []Binding `toml:"binding"`
}

// Load reads declarations from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading declarations: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes and validates declarations. source names the data in
// error messages.
func Parse(source string, data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, config.NewParseError(source, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every declaration: a non-empty action name, at least
// one key, and keys that parse.
func (f *File) Validate() error {
	for i, b := range f.Bindings {
		if strings.TrimSpace(b.Action) == "" {
			return &BindingError{Index: i, Reason: "action is empty"}
		}
		if len(b.Keys) == 0 {
			return &BindingError{Index: i, Action: b.Action, Reason: "no keys"}
		}
		for _, k := range b.Keys {
			if _, ok := key.Parse(k); !ok {
				return &BindingError{Index: i, Action: b.Action, Reason: fmt.Sprintf("invalid keystroke %q", k)}
			}
		}
	}
	return nil
}

// Action is the handler identity of a declared action.
type Action struct {
	name        string
	description string
}

// Name returns the action name.
func (a *Action) Name() string { return a.name }

// Description returns the declared description.
func (a *Action) Description() string { return a.description }

// Apply validates f and registers every declared key with m. Actions are
// returned in declaration order, one per distinct name. Nothing is
// registered when validation fails.
func (f *File) Apply(m *shortcut.Manager) ([]*Action, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	byName := make(map[string]*Action)
	var actions []*Action
	for _, b := range f.Bindings {
		a, ok := byName[b.Action]
		if !ok {
			a = &Action{name: b.Action}
			byName[b.Action] = a
			actions = append(actions, a)
		}
		if b.Description != "" {
			a.description = b.Description
		}
		for _, k := range b.Keys {
			if err := m.Register(k, a); err != nil {
				return actions, err
			}
		}
	}
	return actions, nil
}

// FromRows builds declarations from a Manager's tabular view, one entry
// per handler in first-appearance order with canonical keys.
func FromRows(rows []shortcut.Row) *File {
	f := &File{}
	index := make(map[shortcut.Handler]int)
	for _, r := range rows {
		i, ok := index[r.Handler]
		if !ok {
			i = len(f.Bindings)
			index[r.Handler] = i
			f.Bindings = append(f.Bindings, Binding{Action: r.Name})
		}
		k := r.Keystroke.String()
		if !slices.Contains(f.Bindings[i].Keys, k) {
			f.Bindings[i].Keys = append(f.Bindings[i].Keys, k)
		}
	}
	return f
}

// Marshal encodes the declarations as TOML.
func (f *File) Marshal() ([]byte, error) {
	return toml.Marshal(f)
}
