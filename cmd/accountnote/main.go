package main

import "github.com/kenzo08/saa-soft-account-note/internal/cli"

func main() {
	cli.Execute()
}
