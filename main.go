// main is the entry point for the activity CLI.
package main

import (
	"github.com/tenthdistrict/activity/cmd"
	"github.com/tenthdistrict/activity/internal/contract"
	"github.com/tenthdistrict/activity/internal/history"
)

func main() {
	defer history.CloseHistory()

	if err := cmd.Execute(); err != nil {
		history.CloseHistory()
		contract.LogFatal("Error", err)
	}
}
