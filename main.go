package main

import (
	"github.com/Ethernal-Tech/peggy-relayer/cli"
)

func main() {
	cli.NewRootCommand().Execute()
}
