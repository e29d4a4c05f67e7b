package main

import "github.com/v8build/v8build/cmd/v8build/internal"

func main() {
	internal.Execute()
}
