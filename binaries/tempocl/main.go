package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/tempodev/tempo/common/log/hooks"
	"github.com/tempodev/tempo/scheduler/client"
)

// CLI binary to talk to the tempo scheduler server
//	Supported commands: (see "-h" for all options)
//		schedule --algorithm [name] --application [file] --platform [file]
//		wait --timeout [duration]
//	Global flags:
//		--addr [<host:port> of scheduler server]

func main() {
	log.AddHook(hooks.NewContextHook())

	cl, err := client.NewSimpleCLIClient()
	if err != nil {
		log.Fatal("Failed to create tempo CLI client: ", err)
	}

	if err = cl.Exec(); err != nil {
		log.Fatal("Error running tempocl ", err)
	}
}
