package main

import "github.com/afoley587/coding-challenges-2025/contacts-golang/cmd"

func main() {
	cmd.Execute()
}
