package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// ViewSize is one view's size after a step.
type ViewSize struct {
	Name string `json:"name" yaml:"name"`
	Size int    `json:"size" yaml:"size"`
}

// StepResult is the layout after one step.
type StepResult struct {
	Index  int        `json:"index" yaml:"index"`
	Op     string     `json:"op" yaml:"op"`
	Detail string     `json:"detail" yaml:"detail"`
	Sizes  []ViewSize `json:"sizes" yaml:"sizes"`
	Free   int        `json:"free" yaml:"free"`
	// Remaining is what SetSize could not satisfy.
	Remaining int `json:"remaining,omitempty" yaml:"remaining,omitempty"`
	// Changes counts view-size-change events the step produced.
	Changes int `json:"changes" yaml:"changes"`
}

// Format renders the sizes as "name=size" pairs.
func (r StepResult) Format() string {
	parts := make([]string, len(r.Sizes))
	for i, s := range r.Sizes {
		parts[i] = fmt.Sprintf("%s=%d", s.Name, s.Size)
	}
	return strings.Join(parts, " ")
}

// Report is the outcome of a run. Initial holds the layout before the
// first step.
type Report struct {
	Scenario string       `json:"scenario" yaml:"scenario"`
	Initial  StepResult   `json:"initial" yaml:"initial"`
	Steps    []StepResult `json:"steps" yaml:"steps"`
}

// ExpectationError reports an expect step that did not match.
type ExpectationError struct {
	Step int
	View string
	Want int
	Got  int
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d: view %s: want size %d, got %d", e.Step, e.View, e.Want, e.Got)
}

// Runner replays scenarios.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger uses slog.Default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

type host struct {
	mu   sync.Mutex
	size splitview.Size
}

func (h *host) Size() splitview.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

func (h *host) set(s splitview.Size) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.size = s
}

type run struct {
	sc      *Scenario
	c       *splitview.Container
	host    *host
	sched   *splitview.ManualScheduler
	views   map[string]*splitview.View
	changes int
}

// Run replays sc step by step. It stops at the first failing step and
// returns the results gathered so far with the error.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	st, err := r.setup(sc)
	if err != nil {
		return nil, err
	}
	defer st.c.Destroy()

	report := &Report{Scenario: sc.Name, Initial: st.result(0, "initial", "")}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		st.changes = 0
		res, err := st.apply(i+1, step)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, step.Op(), err)
		}
		r.logger.Debug("scenario step", "scenario", sc.Name, "step", res.Index, "op", res.Op, "sizes", res.Format())
		report.Steps = append(report.Steps, res)
	}
	return report, nil
}

func (r *Runner) setup(sc *Scenario) (*run, error) {
	direction := splitview.Row
	if sc.Direction != "" {
		direction, _ = splitview.ParseDirection(sc.Direction)
	}

	st := &run{
		sc:    sc,
		host:  &host{size: splitview.Size{Width: sc.Width, Height: sc.Height}},
		sched: splitview.NewManualScheduler(),
		views: make(map[string]*splitview.View, len(sc.Views)),
	}
	st.c = splitview.New(
		splitview.WithScheduler(st.sched),
		splitview.WithDirection(direction),
		splitview.WithLogger(r.logger),
	)
	st.c.Subscribe(func(splitview.Event) { st.changes++ }, splitview.EventViewSizeChange)

	if err := st.c.Mount(st.host); err != nil {
		return nil, err
	}
	for _, spec := range sc.Views {
		opts := []splitview.ViewOption{splitview.WithName(spec.Name)}
		if spec.Min != nil {
			opts = append(opts, splitview.WithMin(*spec.Min))
		}
		if spec.Max != nil {
			opts = append(opts, splitview.WithMax(*spec.Max))
		}
		v, err := st.c.CreateView(opts...)
		if err != nil {
			st.c.Destroy()
			return nil, fmt.Errorf("view %s: %w", spec.Name, err)
		}
		st.views[spec.Name] = v
		if spec.Detached {
			continue
		}
		if _, err := st.c.AppendView(v); err != nil {
			st.c.Destroy()
			return nil, err
		}
	}
	return st, nil
}

func (st *run) apply(index int, s Step) (StepResult, error) {
	var (
		detail    string
		remaining int
	)

	switch {
	case s.Drag != nil:
		moves := s.Drag.Moves
		if len(moves) == 0 {
			moves = []int{s.Drag.By}
		}
		if err := st.drag(st.views[s.Drag.View], moves); err != nil {
			return StepResult{}, err
		}
		detail = fmt.Sprintf("%s by %v", s.Drag.View, moves)

	case s.SetSize != nil:
		var err error
		remaining, err = st.views[s.SetSize.View].SetSize(s.SetSize.Size)
		if err != nil {
			return StepResult{}, err
		}
		detail = fmt.Sprintf("%s to %v", s.SetSize.View, s.SetSize.Size)

	case s.Resize != nil:
		st.host.set(splitview.Size{Width: s.Resize.Width, Height: s.Resize.Height})
		st.sched.Advance()
		detail = fmt.Sprintf("%dx%d", s.Resize.Width, s.Resize.Height)

	case s.Remove != "":
		if _, err := st.c.RemoveView(st.views[s.Remove]); err != nil {
			return StepResult{}, err
		}
		detail = s.Remove

	case s.Insert != nil:
		var ref *splitview.View
		if s.Insert.Before != "" {
			ref = st.views[s.Insert.Before]
		}
		if _, err := st.c.InsertBefore(st.views[s.Insert.View], ref); err != nil {
			return StepResult{}, err
		}
		detail = s.Insert.View
		if ref != nil {
			detail += " before " + s.Insert.Before
		}

	case s.Direction != "":
		d, err := splitview.ParseDirection(s.Direction)
		if err != nil {
			return StepResult{}, err
		}
		if err := st.c.SetDirection(d); err != nil {
			return StepResult{}, err
		}
		detail = d.String()

	case s.Relayout:
		st.c.Relayout()

	case s.Equalize:
		st.c.Equalize()

	case s.Expect != nil:
		if err := st.expect(index, s.Expect); err != nil {
			return StepResult{}, err
		}
	}

	res := st.result(index, s.Op(), detail)
	res.Remaining = remaining
	return res, nil
}

func (st *run) drag(v *splitview.View, moves []int) error {
	var start int
	for _, p := range st.c.Layout() {
		if p.View == v {
			start = p.Offset
		}
	}

	at := func(offset int) splitview.Point {
		if st.c.Direction() == splitview.Column {
			return splitview.Point{Y: offset}
		}
		return splitview.Point{X: offset}
	}

	d, err := st.c.BeginDrag(v, at(start))
	if err != nil {
		return err
	}
	for _, m := range moves {
		d.Move(at(start + m))
	}
	d.End()
	return nil
}

func (st *run) expect(index int, want map[string]int) error {
	for _, spec := range st.sc.Views {
		size, ok := want[spec.Name]
		if !ok {
			continue
		}
		if got := st.views[spec.Name].Size(); got != size {
			return &ExpectationError{Step: index, View: spec.Name, Want: size, Got: got}
		}
	}
	return nil
}

func (st *run) result(index int, op, detail string) StepResult {
	res := StepResult{
		Index:   index,
		Op:      op,
		Detail:  detail,
		Free:    st.c.FreeSize(),
		Changes: st.changes,
	}
	for _, v := range st.c.Views() {
		res.Sizes = append(res.Sizes, ViewSize{Name: v.Name(), Size: v.Size()})
	}
	return res
}
