package main

import "github.com/siddharthshetty008/restoAnalyze/cmd"

func main() {
	cmd.Execute()
}
