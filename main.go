package main

import "github.com/arkive/arkive/cmd/arkive"

func main() { arkive.Execute() }
