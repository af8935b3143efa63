// Command ls-starmap is a terminal star map for any place and time.
package main

import "github.com/litescript/ls-starmap/internal/cli"

func main() {
	cli.Execute()
}
