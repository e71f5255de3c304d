package main

import "github.com/inovacc/ghuploader/cmd"

func main() {
	cmd.Execute()
}
