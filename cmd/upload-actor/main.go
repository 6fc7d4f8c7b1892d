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
	ingestor, err := actors.NewIngestor(gateway,
		os.Getenv("TACC_STORAGE_SYSTEM"),
		os.Getenv("TACC_DEST_PATH"),
		os.Getenv("TACC_NEXT_ACTOR_ID"))
	if err != nil {
		log.Fatalf("Failed to configure upload actor: %s", err)
	}
	if err = ingestor.Handle(message); err != nil {
		log.Fatalf("Failed to handle message: %s", err)
	}
	fmt.Printf("Ingested %s and notified %s\n", message.URL, os.Getenv("TACC_NEXT_ACTOR_ID"))
}
