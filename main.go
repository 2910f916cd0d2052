package main

import "github.com/tonimelisma/sponsorctl/cmd"

func main() {
	cmd.Execute()
}
