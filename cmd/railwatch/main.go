package main

import "github.com/railwatch/railwatch/internal/cli"

func main() {
	cli.Execute()
}
