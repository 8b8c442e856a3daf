package main

import "github.com/stephenafamo/infolist/internal/cli"

func main() {
	cli.Execute()
}
