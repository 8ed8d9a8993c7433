// Package dispatcher is the host engine: it walks a task list in order and
// hands each directive to the first plugin that can handle it. The defaults
// directive is handled here and changes the option overrides seen by every
// later task.
package dispatcher

import (
	"slices"
	"time"

	"github.com/arthur-debert/dotbrew/pkg/logging"
	"github.com/arthur-debert/dotbrew/pkg/plugin"
	"github.com/rs/zerolog"
)

// Factory builds a plugin bound to a context. Plugins are rebuilt whenever
// the defaults directive replaces the context.
type Factory func(ctx plugin.Context) plugin.Plugin

// Options controls which tasks run and when to stop
type Options struct {
	// Only restricts the run to these directives when non-empty
	Only []string

	// Except skips these directives
	Except []string

	// ExitOnFailure stops at the first failed task
	ExitOnFailure bool
}

// TaskResult is the outcome of one task
type TaskResult struct {
	Directive string        `json:"directive"`
	Items     []string      `json:"items,omitempty"`
	Handled   bool          `json:"handled"`
	Success   bool          `json:"success"`
	Skipped   bool          `json:"skipped,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Result is the outcome of a run
type Result struct {
	Tasks   []TaskResult `json:"tasks"`
	Success bool         `json:"success"`

	// Stopped is set when ExitOnFailure cut the run short
	Stopped bool `json:"stopped,omitempty"`
}

// Failed returns the tasks that did not succeed
func (r *Result) Failed() []TaskResult {
	var failed []TaskResult
	for _, t := range r.Tasks {
		if !t.Skipped && !t.Success {
			failed = append(failed, t)
		}
	}
	return failed
}

// Dispatcher runs task lists against a set of plugins
type Dispatcher struct {
	ctx       *plugin.StaticContext
	factories []Factory
	plugins   []plugin.Plugin
	opts      Options
	logger    zerolog.Logger
}

// New creates a dispatcher starting from ctx
func New(ctx *plugin.StaticContext, opts Options, factories ...Factory) *Dispatcher {
	d := &Dispatcher{
		ctx:       ctx,
		factories: factories,
		opts:      opts,
		logger:    logging.GetLogger("dispatcher"),
	}
	d.bind()
	return d
}

// Context returns the context later tasks will see
func (d *Dispatcher) Context() *plugin.StaticContext {
	return d.ctx
}

func (d *Dispatcher) bind() {
	d.plugins = make([]plugin.Plugin, 0, len(d.factories))
	for _, f := range d.factories {
		d.plugins = append(d.plugins, f(d.ctx))
	}
}

// Run executes tasks sequentially
func (d *Dispatcher) Run(tasks []Task) *Result {
	done := logging.LogOperationStart(d.logger, "dispatch")
	defer done()

	result := &Result{Success: true}

	for _, task := range tasks {
		tr := d.runTask(task)
		result.Tasks = append(result.Tasks, tr)

		if tr.Skipped || tr.Success {
			continue
		}
		result.Success = false
		if d.opts.ExitOnFailure {
			d.logger.Error().Str("directive", task.Directive).Msg("Stopping after failed task")
			result.Stopped = true
			break
		}
	}

	if result.Success {
		d.logger.Info().Int("tasks", len(result.Tasks)).Msg("All tasks executed successfully")
	} else {
		d.logger.Error().Int("failed", len(result.Failed())).Msg("Some tasks were not executed successfully")
	}
	return result
}

func (d *Dispatcher) runTask(task Task) TaskResult {
	tr := TaskResult{Directive: task.Directive, Items: task.Items}

	if task.Directive == DirectiveDefaults {
		d.ctx = d.ctx.WithDefaults(task.Defaults)
		d.bind()
		d.logger.Debug().Int("directives", len(task.Defaults)).Msg("Defaults replaced")
		tr.Handled = true
		tr.Success = true
		return tr
	}

	if !d.selected(task.Directive) {
		d.logger.Debug().Str("directive", task.Directive).Msg("Skipping filtered directive")
		tr.Skipped = true
		return tr
	}

	start := time.Now()
	for _, p := range d.plugins {
		if !p.CanHandle(task.Directive) {
			continue
		}
		tr.Handled = true
		tr.Success = p.Handle(task.Directive, task.Items)
		break
	}
	tr.Duration = time.Since(start)

	if !tr.Handled {
		d.logger.Error().Str("directive", task.Directive).Int("line", task.Line).Msg("Action not handled")
	}
	return tr
}

func (d *Dispatcher) selected(directive string) bool {
	if len(d.opts.Only) > 0 && !slices.Contains(d.opts.Only, directive) {
		return false
	}
	return !slices.Contains(d.opts.Except, directive)
}
