package main

import "github.com/Tedbot2000/todo-genie/internal/commands"

func main() {
	commands.Execute()
}
