package main

import "github.com/pareseq/pare/cmd/pare/cmd"

func main() {
	cmd.Execute()
}
