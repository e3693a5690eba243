package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/covenant-lang/covenant/internal/diag"
)

var summaryPrinter = message.NewPrinter(language.English)

// printSummary writes a pluralized "N errors, N warnings" line, grounded
// on the rule that error counts determine compilation status —
// message.Printer handles the singular/plural split so "1 error" and
// "2 errors" both read naturally.
func printSummary(w io.Writer, bag *diag.Bag) {
	errs, warns, _ := bag.CountBySeverity()
	summaryPrinter.Fprintf(w, "%d %s, %d %s\n",
		errs, pluralize(errs, "error", "errors"),
		warns, pluralize(warns, "warning", "warnings"))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
