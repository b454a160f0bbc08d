package main

import "github.com/gotough/gotough/cmd"

func main() {
	cmd.Execute()
}
