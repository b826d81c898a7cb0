// Command compile is the CLI front end for the timeline compiler:
// subcommands for compiling a Script into a Timeline and for
// independently validating either document.
package main

func main() {
	Execute()
}
