package main

import (
	"fmt"
	"io"

	"item-pairs/internal/similarity"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}

func printStatus(w io.Writer, label, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", bold(label+":"), fmt.Sprintf(format, args...))
}

// printEvaluation renders accuracy and the confusion matrix.
func printEvaluation(w io.Writer, title string, ev similarity.Evaluation) {
	acc := fmt.Sprintf("%.2f%%", ev.Accuracy*100)
	switch {
	case ev.Accuracy >= 0.9:
		acc = green(acc)
	case ev.Accuracy >= 0.7:
		acc = yellow(acc)
	default:
		acc = red(acc)
	}
	fmt.Fprintf(w, "\n%s\n", cyan(title))
	printStatus(w, "Samples", "%d", ev.Total)
	printStatus(w, "Accuracy", "%s (%d correct)", acc, ev.Correct)
	printStatus(w, "Confusion", "tp=%d fp=%d tn=%d fn=%d",
		ev.TruePositive, ev.FalsePositive, ev.TrueNegative, ev.FalseNegative)
}
