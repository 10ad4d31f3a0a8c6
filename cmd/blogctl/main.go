package main

import "bloghub/cmd/blogctl/command"

func main() {
	command.Execute()
}
