package main

import "github.com/Alturino/nayarn/cmd"

func main() {
	cmd.Start()
}
