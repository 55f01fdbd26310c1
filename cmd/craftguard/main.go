package main

import "github.com/vitoramaral10/craft-guard/internal/cli"

func main() {
	cli.Execute()
}
