package main

import (
	"fmt"
	"log"
	"os"

	actors "github.com/TACC/taccster-2021-tapis-actors"
	"github.com/joho/godotenv"
)

func main() {
	// Pick up a .env file when present, for local development.
	_ = godotenv.Load()

	context, err := actors.NewContext()
	if err != nil {
		log.Fatalf("Failed to read execution context: %s", err)
	}
	message, err := context.Message()
	if err != nil {
		log.Fatalf("Failed to parse message: %s", err)
	}
	gateway, err := context.Gateway()
	if err != nil {
		log.Fatalf("Failed to build gateway: %s", err)
	}
	submitter, err := actors.NewSubmitter(gateway,
		os.Getenv("TACC_APP_ID"),
		os.Getenv("TACC_MAX_RUN_TIME"),
		os.Getenv("TACC_ARCHIVE") == "true",
		os.Getenv("TACC_NOTIFY_ACTOR_ID"),
		os.Getenv("TACC_NOTIFY_NONCE"))
	if err != nil {
		log.Fatalf("Failed to configure job actor: %s", err)
	}
	job, err := submitter.Handle(message)
	if err != nil {
		log.Fatalf("Failed to handle message: %s", err)
	}
	fmt.Printf("Submitted job %s (%s) against %s\n", job.ID, job.Status, message.File)
}
