package main

import "hotelres/internal/cli"

func main() {
	cli.Execute()
}
