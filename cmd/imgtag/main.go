package main

import "imgtag/cmd/imgtag/cmd"

func main() {
	cmd.Execute()
}
