package main

import "ros-cargo-build/internal/cli"

func main() {
	cli.Execute()
}
