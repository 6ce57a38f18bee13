package main

import "github.com/sw33tLie/renumber/cmd"

func main() {
	cmd.Execute()
}
