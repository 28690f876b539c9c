package main

import "linepatch/cmd/linepatch/cmd"

func main() {
	cmd.Execute()
}
