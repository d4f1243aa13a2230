package main

import "github.com/notargets/saltwedge/cmd"

func main() {
	cmd.Execute()
}
