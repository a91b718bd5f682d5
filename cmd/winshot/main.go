package main

import "github.com/winshot/winshot/cmd/winshot/commands"

func main() {
	commands.Execute()
}
