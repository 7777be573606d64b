/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/cratekit/seratag/cmd/seratag/cmd"
)

func main() {
	cmd.Execute()
}
