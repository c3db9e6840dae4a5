package main

import "challengesim/internal/cli"

func main() {
	cli.Execute()
}
