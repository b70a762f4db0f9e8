package main

import "github.com/KaramelBytes/microclean/cmd"

func main() {
	cmd.Execute()
}
