package main

import "chirp/cmd/app/commands"

func main() {
	commands.Execute()
}
