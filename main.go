// Public domain.

package main

import "github.com/soniakeys/starindex/internal/siprog"

func main() {
	siprog.Main()
}
