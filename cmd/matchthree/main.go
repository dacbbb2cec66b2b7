package main

import "github.com/mcoot/matchthree/internal/cli"

func main() {
	cli.Execute()
}
