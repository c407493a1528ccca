// Package main is the entry point for the autosave command line tool.
package main

import "github.com/ketulrudani/Self-saving-for-your-retirement/internal/cli"

func main() {
	cli.Execute()
}
