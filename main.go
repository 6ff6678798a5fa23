package main

import "quickdeployer/qd/cmd"

func main() {
	cmd.Execute()
}
