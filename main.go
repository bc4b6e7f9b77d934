package main

import "github.com/theirongolddev/regimen/cmd"

func main() {
	cmd.Execute()
}
