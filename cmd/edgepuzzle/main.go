package main

import "github.com/mcoot/edgepuzzle/internal/cli"

func main() {
	cli.Execute()
}
