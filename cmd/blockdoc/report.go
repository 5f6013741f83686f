package main

import (
	"fmt"
	"io"

	"broadsheet/internal/domain/models/article"
	"broadsheet/internal/policy"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen, color.Bold)
	dimColor     = color.New(color.Faint)
)

// checkReport is everything check found for one input
type checkReport struct {
	Name       string
	Policy     policy.Name
	Parse      *article.ParseResult
	Validation *article.ValidationResult
}

func (r checkReport) ok() bool {
	return r.Parse.Success && r.Validation.IsValid
}

func (r checkReport) print(w io.Writer) {
	format := "structured"
	if r.Parse.IsLegacy {
		format = "legacy"
	}
	dimColor.Fprintf(w, "%s: %d blocks, %s format, policy %s\n", r.Name, len(r.Parse.Blocks), format, r.Policy)

	printParseErrors(w, r.Name, r.Parse.Errors)

	for _, e := range r.Validation.Errors {
		errorColor.Fprint(w, "error")
		fmt.Fprintf(w, " %s%s: %s\n", location(e.Index), e.Type, e.Message)
	}
	for _, warn := range r.Validation.Warnings {
		warningColor.Fprint(w, "warning")
		fmt.Fprintf(w, " %s%s: %s\n", location(warn.Index), warn.Type, warn.Message)
	}

	if r.ok() {
		okColor.Fprintf(w, "ok")
		fmt.Fprintf(w, " %d warning(s)\n", len(r.Validation.Warnings))
		return
	}
	errorColor.Fprintf(w, "failed")
	fmt.Fprintf(w, " %d parse error(s), %d validation error(s), %d warning(s)\n",
		len(r.Parse.Errors), len(r.Validation.Errors), len(r.Validation.Warnings))
}

func printParseErrors(w io.Writer, name string, errs []article.ParseError) {
	for _, e := range errs {
		errorColor.Fprint(w, "parse error")
		fmt.Fprintf(w, " %s:%d: %s: %s\n", name, e.Line, e.Kind, e.Message)
	}
}

// location renders a block index, or nothing for article-wide findings
func location(index int) string {
	if index < 0 {
		return ""
	}
	return fmt.Sprintf("block %d: ", index)
}
