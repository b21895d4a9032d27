package main

import "github.com/jwein/deals4me/cmd"

func main() {
	cmd.Execute()
}
