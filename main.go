package main

import "github.com/tessro/vlcmark/internal/cli"

func main() {
	cli.Execute()
}
