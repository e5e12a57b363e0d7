//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("barchart draws to a Linux framebuffer; use ./simulator on this platform")
	os.Exit(1)
}
