package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	sectionColor = color.New(color.Bold)
)

// printError writes a bold red diagnostic line to stderr. Color is dropped
// automatically when stderr is not a terminal.
func printError(msg string) {
	errorColor.Fprintln(os.Stderr, msg)
}

// printJSON renders v pretty-printed to stdout.
func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

// printSection renders one titled, pretty-printed block of the decoded
// token.
func printSection(title string, v any) {
	sectionColor.Printf("\n%s\n------------\n", title)
	if err := printJSON(v); err != nil {
		fmt.Println(v)
	}
}
