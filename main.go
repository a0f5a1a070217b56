package main

import (
	"log"

	"github.com/calloway-legal/firmsite/cmd"
	"github.com/calloway-legal/firmsite/config"
)

func main() {
	log.Printf("firmsite %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
