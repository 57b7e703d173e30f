package main

import (
	"github.com/msvens/sgallery/cmd"
)

func main() {
	cmd.Execute()
}
