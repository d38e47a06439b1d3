package main

import "github.com/KaramelBytes/poptotal/cmd"

func main() {
	cmd.Execute()
}
