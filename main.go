package main

import "buildinfo/cmd"

func main() {
	cmd.Execute()
}
