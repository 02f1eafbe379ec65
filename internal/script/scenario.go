// Package script replays layout scenarios described in YAML against a
// headless container. The simulate command and engine regression tests
// use it.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// Scenario is a host size, a set of views and the steps applied to them.
type Scenario struct {
	Name      string     `yaml:"name"`
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
	Direction string     `yaml:"direction"`
	Views     []ViewSpec `yaml:"views"`
	Steps     []Step     `yaml:"steps"`
}

// ViewSpec declares one view. Absent Min and Max keep the engine
// defaults; an explicit 0 is used as given.
type ViewSpec struct {
	Name string   `yaml:"name"`
	Min  *float64 `yaml:"min"`
	Max  *float64 `yaml:"max"`
	// Detached views are created but not appended until an insert step.
	Detached bool `yaml:"detached"`
}

// Step holds exactly one operation.
type Step struct {
	Drag      *DragStep      `yaml:"drag,omitempty"`
	SetSize   *SetSizeStep   `yaml:"set_size,omitempty"`
	Resize    *ResizeStep    `yaml:"resize,omitempty"`
	Remove    string         `yaml:"remove,omitempty"`
	Insert    *InsertStep    `yaml:"insert,omitempty"`
	Direction string         `yaml:"direction,omitempty"`
	Relayout  bool           `yaml:"relayout,omitempty"`
	Equalize  bool           `yaml:"equalize,omitempty"`
	Expect    map[string]int `yaml:"expect,omitempty"`
}

// DragStep drags the handle at the leading edge of View. Every entry of
// Moves is a pointer offset from the drag start; By is shorthand for a
// single move.
type DragStep struct {
	View  string `yaml:"view"`
	By    int    `yaml:"by"`
	Moves []int  `yaml:"moves"`
}

// SetSizeStep calls SetSize on View.
type SetSizeStep struct {
	View string  `yaml:"view"`
	Size float64 `yaml:"size"`
}

// ResizeStep changes the host size and runs one frame.
type ResizeStep struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// InsertStep links View before Before, or at the end when Before is empty.
type InsertStep struct {
	View   string `yaml:"view"`
	Before string `yaml:"before"`
}

// Op names the operation held by the step.
func (s Step) Op() string {
	ops := s.ops()
	if len(ops) != 1 {
		return "invalid"
	}
	return ops[0]
}

func (s Step) ops() []string {
	var ops []string
	if s.Drag != nil {
		ops = append(ops, "drag")
	}
	if s.SetSize != nil {
		ops = append(ops, "set_size")
	}
	if s.Resize != nil {
		ops = append(ops, "resize")
	}
	if s.Remove != "" {
		ops = append(ops, "remove")
	}
	if s.Insert != nil {
		ops = append(ops, "insert")
	}
	if s.Direction != "" {
		ops = append(ops, "direction")
	}
	if s.Relayout {
		ops = append(ops, "relayout")
	}
	if s.Equalize {
		ops = append(ops, "equalize")
	}
	if s.Expect != nil {
		ops = append(ops, "expect")
	}
	return ops
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, core.ErrValidation(core.CodeInvalidScenario, "decoding scenario").WithCause(err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario before anything runs.
func (sc *Scenario) Validate() error {
	invalid := func(format string, args ...any) error {
		return core.ErrValidation(core.CodeInvalidScenario, fmt.Sprintf(format, args...))
	}

	if sc.Width < 0 || sc.Height < 0 {
		return invalid("host size must not be negative")
	}
	if sc.Direction != "" {
		if _, err := splitview.ParseDirection(sc.Direction); err != nil {
			return invalid("unknown direction %q", sc.Direction)
		}
	}

	names := make(map[string]bool, len(sc.Views))
	for i, v := range sc.Views {
		if v.Name == "" {
			return invalid("views[%d]: name required", i)
		}
		if names[v.Name] {
			return invalid("views[%d]: duplicate name %q", i, v.Name)
		}
		names[v.Name] = true
	}

	ref := func(step int, name string) error {
		if !names[name] {
			return invalid("steps[%d]: unknown view %q", step, name)
		}
		return nil
	}

	for i, s := range sc.Steps {
		if ops := s.ops(); len(ops) != 1 {
			return invalid("steps[%d]: want exactly one operation, got %v", i, ops)
		}
		var err error
		switch {
		case s.Drag != nil:
			err = ref(i, s.Drag.View)
		case s.SetSize != nil:
			err = ref(i, s.SetSize.View)
		case s.Remove != "":
			err = ref(i, s.Remove)
		case s.Insert != nil:
			err = ref(i, s.Insert.View)
			if err == nil && s.Insert.Before != "" {
				err = ref(i, s.Insert.Before)
			}
		case s.Resize != nil:
			if s.Resize.Width < 0 || s.Resize.Height < 0 {
				err = invalid("steps[%d]: host size must not be negative", i)
			}
		case s.Direction != "":
			if _, perr := splitview.ParseDirection(s.Direction); perr != nil {
				err = invalid("steps[%d]: unknown direction %q", i, s.Direction)
			}
		case s.Expect != nil:
			for name := range s.Expect {
				if err = ref(i, name); err != nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
