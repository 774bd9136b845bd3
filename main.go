package main

import "github.com/takty/croqujs-sub000/cmd"

func main() {
	cmd.Execute()
}
