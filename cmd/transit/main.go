// Command transit reports sign durations, aspect timing and transit
// significance for natal charts.
package main

import "github.com/papapumpkin/transit/cmd"

func main() {
	cmd.Execute()
}
