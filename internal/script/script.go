// Package script runs user-supplied tengo scripts that steer the demo player.
//
// A script sees a read-only `view` map and a `memory` map that persists
// between ticks. It steers by assigning the `left` and `right` globals:
//
//	left = !view.falling && view.offset_x > -1000
//	right = !left
package script

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// DefaultTimeout bounds one script run.
const DefaultTimeout = 5 * time.Millisecond

// View is the state handed to the script each tick.
type View struct {
	Tick          int
	Falling       bool
	OffsetX       float64
	OffsetY       float64
	PlayerX       float64
	PlayerY       float64
	BarrierY      float64
	BarrierActive bool
	Score         int
}

// Decision is the script's output for one tick.
type Decision struct {
	Left  bool
	Right bool
}

// Runner holds a compiled script.
type Runner struct {
	path     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	timeout  time.Duration
}

// Load reads and compiles the script at path. maxAllocs caps the objects a
// single run may allocate; zero or less means unlimited.
func Load(path string, maxAllocs int64) (*Runner, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	r, err := Compile(src, maxAllocs)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	r.path = path
	return r, nil
}

// Compile compiles script source.
func Compile(src []byte, maxAllocs int64) (*Runner, error) {
	s := tengo.NewScript(src)
	_ = s.Add("view", map[string]any{})
	_ = s.Add("memory", map[string]any{})
	_ = s.Add("left", false)
	_ = s.Add("right", false)
	s.SetImports(stdlib.GetModuleMap("math", "rand"))
	if maxAllocs > 0 {
		s.SetMaxAllocs(maxAllocs)
	}

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &Runner{
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		timeout:  DefaultTimeout,
	}, nil
}

// Path returns the file the script was loaded from, if any.
func (r *Runner) Path() string { return r.path }

// SetTimeout changes the per-run time limit.
func (r *Runner) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Decide runs the script once against v.
func (r *Runner) Decide(ctx context.Context, v View) (Decision, error) {
	if err := r.compiled.Set("view", viewObject(v)); err != nil {
		return Decision{}, fmt.Errorf("script: set view: %w", err)
	}
	if err := r.compiled.Set("memory", r.memory); err != nil {
		return Decision{}, fmt.Errorf("script: set memory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.compiled.RunContext(ctx); err != nil {
		return Decision{}, fmt.Errorf("script: run: %w", err)
	}

	return Decision{
		Left:  r.compiled.Get("left").Bool(),
		Right: r.compiled.Get("right").Bool(),
	}, nil
}

func viewObject(v View) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"tick":           &tengo.Int{Value: int64(v.Tick)},
		"falling":        boolObject(v.Falling),
		"offset_x":       &tengo.Float{Value: v.OffsetX},
		"offset_y":       &tengo.Float{Value: v.OffsetY},
		"player_x":       &tengo.Float{Value: v.PlayerX},
		"player_y":       &tengo.Float{Value: v.PlayerY},
		"barrier_y":      &tengo.Float{Value: v.BarrierY},
		"barrier_active": boolObject(v.BarrierActive),
		"score":          &tengo.Int{Value: int64(v.Score)},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
