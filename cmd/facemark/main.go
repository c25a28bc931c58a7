package main

import "github.com/presencelabs/facemark/internal/cli"

func main() {
	cli.Execute()
}
