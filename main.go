/*
Copyright © 2026 shadowrun-backend contributors
*/
package main

import "github.com/sloppymo/shadowrun-backend/cmd"

func main() {
	cmd.Execute()
}
