package main

import "wish/cmd"

func main() {
	cmd.Execute()
}
