/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/usersdb/usersdb/cmd"

func main() {
	cmd.Execute()
}
