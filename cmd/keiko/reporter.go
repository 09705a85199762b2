package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/keiko-dev/keiko/internal/orchestration"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// emitMetric writes the single machine-readable result line. This is the
// only thing the run command prints on stdout.
func emitMetric(w io.Writer, metric string, value float64) {
	fmt.Fprintf(w, "%s: %.2f\n", metric, value)
}

// printSummary renders a per-scenario results table on stderr. When stderr
// is a terminal the table gets a little decoration; when piped it stays
// plain.
func printSummary(w io.Writer, outcome *orchestration.Outcome) {
	fancy := false
	if f, ok := w.(*os.File); ok {
		fancy = term.IsTerminal(int(f.Fd()))
	}

	nameWidth := len("Scenario")
	for _, s := range outcome.Scenarios {
		if rw := runewidth.StringWidth(s.Scenario); rw > nameWidth {
			nameWidth = rw
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s  %5s  %5s  %s\n", runewidth.FillRight("Scenario", nameWidth), "Score", "Turns", "Notes")
	if fancy {
		fmt.Fprintf(w, "%s  %5s  %5s  %s\n", strings.Repeat("-", nameWidth), "-----", "-----", "-----")
	}

	for _, s := range outcome.Scenarios {
		notes := ""
		switch {
		case s.ErrorMsg != "":
			notes = "FAILED: " + s.ErrorMsg
		case s.BudgetExhausted:
			notes = "turn budget exhausted"
		}
		fmt.Fprintf(w, "%s  %5d  %5d  %s\n", runewidth.FillRight(s.Scenario, nameWidth), s.Score, s.Turns, notes)
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(w, "\n%d scenarios, %d failures, mean %.2f\n\n", len(outcome.Scenarios), outcome.Failures, outcome.Mean)
}
