package main

import "github.com/notargets/gospectral/cmd"

func main() {
	cmd.Execute()
}
