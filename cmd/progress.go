package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/queueing-sim/queueing-sim/sim"
)

const progressWidth = 40

// progressBar renders one line per measurement, redrawn after each round.
type progressBar struct {
	out   io.Writer
	label string
	done  *color.Color
	todo  *color.Color
	info  *color.Color
}

func newProgressBar(out io.Writer, label string) *progressBar {
	return &progressBar{
		out:   out,
		label: label,
		done:  color.New(color.FgGreen),
		todo:  color.New(color.FgHiBlack),
		info:  color.New(color.FgCyan),
	}
}

// Update is a sim.ProgressFunc.
func (p *progressBar) Update(pr sim.Progress) {
	filled := progressWidth * pr.Round / max(pr.Rounds, 1)
	fmt.Fprintf(p.out, "\r%s ", p.label)
	_, _ = p.done.Fprint(p.out, strings.Repeat("█", filled))
	_, _ = p.todo.Fprint(p.out, strings.Repeat("░", progressWidth-filled))
	_, _ = p.info.Fprintf(p.out, " attempt %d round %d/%d (n=%d)", pr.Attempt, pr.Round, pr.Rounds, pr.RoundSize)
}

// Finish ends the progress line with a colored verdict.
func (p *progressBar) Finish(m *sim.Measurement) {
	if m == nil {
		fmt.Fprintln(p.out)
		return
	}
	verdict := color.New(color.FgGreen, color.Bold).Sprint("ok")
	if !m.Converged {
		verdict = color.New(color.FgRed, color.Bold).Sprint("FAILED")
	}
	fmt.Fprintf(p.out, " %s\n", verdict)
}
