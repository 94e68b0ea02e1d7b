package main

import "traceability/cmd"

func main() {
	cmd.Execute()
}
