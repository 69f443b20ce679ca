package main

import "github.com/devcatalyst07/fitplan/cmd"

func main() {
	cmd.Execute()
}
