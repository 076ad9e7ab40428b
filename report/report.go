// Package report renders the per-iteration summary table described in
// spec §4.11 [NEW]: iteration, best fitness, mean fitness, stall count,
// elapsed time, emitted every report_iteration iterations.
package report

import (
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pa-m/geneva/population"
	"gonum.org/v1/gonum/stat"
)

var _ population.Reporter = (*Table)(nil)

// Table renders one row per reported iteration to Output (os.Stdout by
// default). Every iteration is observed, but a row is only appended every
// Every iterations (spec §6 "report_iteration"); Every <= 0 means "never".
type Table struct {
	Output io.Writer
	Every  int

	writer    table.Writer
	startedAt time.Time
	started   bool
}

// Report implements population.Reporter.
func (t *Table) Report(p *population.Population) {
	if t.Every <= 0 || p.Iteration()%t.Every != 0 {
		return
	}
	t.ensureWriter()

	best, meanFitness, stddev := summarize(p)
	t.writer.AppendRow(table.Row{
		p.Iteration(),
		best,
		meanFitness,
		stddev,
		p.StallCounter(),
		time.Since(t.startedAt).Round(time.Millisecond),
	})
	t.writer.Render()
}

func (t *Table) ensureWriter() {
	if t.writer != nil {
		return
	}
	if t.Output == nil {
		t.Output = os.Stdout
	}
	t.started = true
	t.startedAt = time.Now()

	w := table.NewWriter()
	w.SetOutputMirror(t.Output)
	w.SetTitle("OPTIMIZATION PROGRESS")
	w.SetStyle(table.StyleRounded)
	w.AppendHeader(table.Row{"Iteration", "Best", "Mean", "StdDev", "Stall", "Elapsed"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.writer = w
}

// summarize computes the best raw fitness plus the population's mean and
// standard deviation of raw fitness (non-dirty individuals only; a dirty
// individual with no evaluation-error sentinel contributes nothing rather
// than forcing an evaluation to compute a reporting statistic).
func summarize(p *population.Population) (best, mean, stddev float64) {
	values := make([]float64, 0, len(p.Individuals()))
	for _, ind := range p.Individuals() {
		if ind.Dirty() && !ind.HasEvaluationError() {
			continue
		}
		v, err := ind.Fitness(p.Maximize())
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0, 0, 0
	}
	best = values[0]
	for _, v := range values {
		if betterRaw(v, best, p.Maximize()) {
			best = v
		}
	}
	mean, stddev = stat.MeanStdDev(values, nil)
	return best, mean, stddev
}

func betterRaw(a, b float64, maximize bool) bool {
	if maximize {
		return a > b
	}
	return a < b
}
