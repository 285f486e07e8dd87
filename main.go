package main

import "github.com/kalbasit/surqlgen/cli"

func main() {
	cli.Execute()
}
