package main

import (
	"github.com/arthur-debert/repokit/internal/cli"
)

func main() {
	cli.Execute()
}
