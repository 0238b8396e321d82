package main

import "github.com/mell-lang/mell/cmd/mell/commands"

func main() {
	commands.Execute()
}
