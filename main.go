package main

import "github.com/lepinkainen/roster/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
