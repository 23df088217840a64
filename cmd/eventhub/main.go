package main

import (
	_ "github.com/eventhub/eventhub/docs"

	"github.com/eventhub/eventhub/cmd/eventhub/cmd"
)

// @title eventhub API
// @version 1.0
// @description Event submission, review and participation.
// @BasePath /
func main() {
	cmd.Execute()
}
