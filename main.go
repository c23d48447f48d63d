package main

import "github.com/Rorical/MiLista/cmd"

func main() {
	cmd.Execute()
}
