package main

import "github.com/jobdeck/jobdeck/internal/cli/cmd"

func main() {
	cmd.Execute()
}
