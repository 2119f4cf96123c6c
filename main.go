package main

import "github.com/KaramelBytes/likertlens/cmd"

func main() {
	cmd.Execute()
}
