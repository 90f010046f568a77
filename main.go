package main

import "github.com/jsphweid/midivary/cmd"

func main() {
	cmd.Execute()
}
