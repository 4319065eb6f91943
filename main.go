package main

import (
	"rwalend/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Run(version + "-" + commit)
}
