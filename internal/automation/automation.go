// Package automation runs scripted batches and parameter sweeps of scenarios.
package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/scenario"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyBatch   = errors.New("automation: batch has no steps")
	ErrInvalidStep  = errors.New("automation: step needs exactly one of preset or config")
	ErrInvalidSweep = errors.New("automation: invalid sweep")
)

// Batch is a scripted sequence of scenario runs.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Parallel runs every step on its own goroutine.
	Parallel bool   `yaml:"parallel"`
	Steps    []Step `yaml:"steps"`
}

// Step names a preset ("group/name") or a config file, with optional overrides.
type Step struct {
	Preset    string  `yaml:"preset"`
	Config    string  `yaml:"config"`
	Duration  float32 `yaml:"duration"`
	Tolerance float32 `yaml:"tolerance"`
	SaveAs    string  `yaml:"save_as"`
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Resolve loads the step's configuration and applies its overrides.
func (s Step) Resolve() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case (s.Preset == "") == (s.Config == ""):
		return nil, ErrInvalidStep
	case s.Preset != "":
		group, name, _ := strings.Cut(s.Preset, "/")
		if cfg = config.GetPreset(group, name); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		if cfg, err = config.Load(s.Config); err != nil {
			return nil, err
		}
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Tolerance > 0 {
		cfg.Detector.Tolerance = s.Tolerance
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, cfg.Validate()
}

// RunBatch runs every step and returns the results in step order.
func RunBatch(ctx context.Context, b *Batch, logger *log.Logger) ([]*scenario.Result, error) {
	if len(b.Steps) == 0 {
		return nil, ErrEmptyBatch
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	results := make([]*scenario.Result, len(b.Steps))
	errs := make([]error, len(b.Steps))
	run := func(i int) {
		logger.Printf("running step %d/%d", i+1, len(b.Steps))
		results[i], errs[i] = runStep(ctx, b.Steps[i])
		if errs[i] != nil {
			errs[i] = fmt.Errorf("step %d: %w", i+1, errs[i])
		}
	}

	if !b.Parallel {
		for i := range b.Steps {
			if run(i); errs[i] != nil {
				return results[:i], errs[i]
			}
		}
		return results, nil
	}

	var wg sync.WaitGroup
	for i := range b.Steps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(i)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

func runStep(ctx context.Context, step Step) (*scenario.Result, error) {
	cfg, err := step.Resolve()
	if err != nil {
		return nil, err
	}
	return runConfig(ctx, cfg)
}

func runConfig(ctx context.Context, cfg *config.Config) (*scenario.Result, error) {
	s, err := scenario.Build(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// Sweep varies one parameter of a preset over [Min, Max] in Steps values.
type Sweep struct {
	Preset string
	// Param is one of "tolerance", "min", "max" or "duration".
	Param    string
	Min, Max float32
	Steps    int
}

type SweepResult struct {
	Value        float32
	Crossings    int
	FirstContact float64
	Iterations   int
}

func (s *Sweep) apply(cfg *config.Config, v float32) error {
	switch s.Param {
	case "tolerance":
		cfg.Detector.Tolerance = v
	case "min":
		cfg.Collision.Min = v
	case "max":
		cfg.Collision.Max = v
	case "duration":
		cfg.Duration = v
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidSweep, s.Param)
	}
	return nil
}

// RunSweep builds and runs the preset once per parameter value.
func RunSweep(ctx context.Context, s *Sweep) ([]SweepResult, error) {
	if s.Steps < 2 || s.Max < s.Min {
		return nil, fmt.Errorf("%w: need at least 2 steps over a non-empty range", ErrInvalidSweep)
	}

	results := make([]SweepResult, 0, s.Steps)
	step := (s.Max - s.Min) / float32(s.Steps-1)
	for i := range s.Steps {
		v := s.Min + float32(i)*step
		cfg, err := Step{Preset: s.Preset}.Resolve()
		if err != nil {
			return nil, err
		}
		if err := s.apply(cfg, v); err != nil {
			return nil, err
		}
		res, err := runConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", s.Param, v, err)
		}
		results = append(results, SweepResult{
			Value:        v,
			Crossings:    len(res.Crossings),
			FirstContact: res.Metrics["first_contact"],
			Iterations:   res.Detector.Iterations,
		})
	}
	return results, nil
}
