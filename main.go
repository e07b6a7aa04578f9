package main

import "thoreinstein.com/shadow/cmd"

func main() {
	cmd.Execute()
}
