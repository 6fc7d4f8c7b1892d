package main

import (
	"fmt"
	"log"
	"os"
	"time"

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
	notifier, err := actors.NewNotifier(os.Getenv("TACC_WEBHOOK_URL"), time.Second)
	if err != nil {
		log.Fatalf("Failed to configure notify actor: %s", err)
	}
	if err = notifier.Handle(message); err != nil {
		log.Fatalf("Failed to handle message: %s", err)
	}
	fmt.Printf("Posted status %s for job %s\n", message.Status, message.JobID)
}
