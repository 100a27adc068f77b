package main

import "github.com/LeJamon/xrpl-bot/internal/cli"

func main() {
	cli.Execute()
}
