// Package arkive provides the command-line interface for the arkive tool.
// It configures subcommands (check, copy, fix, show, compare, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/arkive/arkive/cmd/arkive"
//	func main() { arkive.Execute() }
package arkive
