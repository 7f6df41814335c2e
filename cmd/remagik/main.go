package main

import "github.com/Juicern/remagik/internal/cli"

func main() {
	cli.Execute()
}
