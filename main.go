package main

import "github.com/KaramelBytes/databrief-cli/cmd"

func main() {
	cmd.Execute()
}
