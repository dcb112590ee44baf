package main

import "pet-care-insights/internal/cli"

func main() {
	cli.Execute()
}
