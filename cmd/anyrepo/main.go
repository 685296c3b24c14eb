// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

// Package main is the entry point for the AnyRepo relay CLI.
package main

import "github.com/anybox/anyrepo/cmd/anyrepo/commands"

func main() {
	commands.Execute()
}
