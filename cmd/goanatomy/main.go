package main

import "github.com/philipparndt/goanatomy/cmd"

func main() {
	cmd.Execute()
}
