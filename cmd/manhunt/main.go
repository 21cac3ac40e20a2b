package main

import "github.com/manhuntgame/manhunt/internal/cli"

func main() {
	cli.Execute()
}
