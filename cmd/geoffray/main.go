package main

import "github.com/zakaryaxali/geoffray-sub000/internal/cli"

func main() {
	cli.Execute()
}
