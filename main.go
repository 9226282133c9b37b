package main

import "github.com/taskdeck/taskdeck/cmd"

func main() {
	cmd.Execute()
}
