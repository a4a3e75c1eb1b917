// poemarket is a command-line client for Path of Exile market data: poe.ninja
// item overviews and official trade site searches.
package main

import "github.com/exile-tools/poemarket/cmd/poemarket/cmd"

func main() {
	cmd.Execute()
}
