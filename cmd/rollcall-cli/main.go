package main

import "rollcall/cmd/rollcall-cli/cmd"

func main() {
	cmd.Execute()
}
