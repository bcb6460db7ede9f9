package main

import "github.com/jsphweid/gosoul/cmd"

func main() {
	cmd.Execute()
}
