package main

import "github.com/popsim/popcore/cmd/popcore/cmd"

func main() {
	cmd.Execute()
}
