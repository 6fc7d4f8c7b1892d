// Command pipeline-local runs the whole upload-submit-notify chain
// in-process against a batch of file URLs. With -dry it records the
// gateway calls in memory instead of talking to a real gateway, which is
// useful for checking a pipeline configuration before deploying it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	actors "github.com/TACC/taccster-2021-tapis-actors"
	"github.com/TACC/taccster-2021-tapis-actors/auth"
	"github.com/TACC/taccster-2021-tapis-actors/auth/mock"
	"github.com/TACC/taccster-2021-tapis-actors/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	var (
		server   = flag.String("server", "https://api.tacc.utexas.edu", "gateway API server")
		system   = flag.String("system", "", "destination storage system")
		destPath = flag.String("path", "inputs", "destination directory on the storage system")
		appID    = flag.String("app", "", "app ID to submit jobs against")
		webhook  = flag.String("webhook", "", "chat webhook URL for status posts")
		archive  = flag.Bool("archive", true, "archive job outputs")
		handlers = flag.Uint("handlers", 1, "messages to process concurrently")
		stage    = flag.String("stage", "", "local file to upload to the storage system before the run")
		dry      = flag.Bool("dry", false, "record gateway calls in memory instead of calling the gateway")
	)
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatalf("Usage: %s [options] url [url...]", os.Args[0])
	}

	_ = godotenv.Load()

	var (
		gateway auth.Gateway
		err     error
	)
	if *dry {
		gateway = mock.NewRecorderGateway()
	} else {
		gateway, err = auth.AuthenticateWithToken(*server, os.Getenv("TACC_ACCESS_TOKEN"))
		if err != nil {
			log.Fatalf("Failed to build gateway: %s", err)
		}
	}

	if *stage != "" {
		staged, err := os.Open(*stage)
		if err != nil {
			log.Fatalf("Failed to open %s: %s", *stage, err)
		}
		info, err := gateway.Upload(*system, *destPath, filepath.Base(*stage), staged)
		staged.Close()
		if err != nil {
			log.Fatalf("Failed to stage %s: %s", *stage, err)
		}
		fmt.Printf("Staged %s\n", info.URI())
	}

	messages := make([]actors.Message, flag.NArg())
	for i, url := range flag.Args() {
		messages[i] = actors.Message{URL: url}
	}

	runner, err := pipeline.NewRunner(gateway, pipeline.Config{
		System:     *system,
		DestPath:   *destPath,
		AppID:      *appID,
		Archive:    *archive,
		WebhookURL: *webhook,
		RetryWait:  time.Second,
	}, messages, *handlers, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %s", err)
	}
	if err = runner.Run(); err != nil {
		log.Fatalf("Pipeline run failed: %s", err)
	}
	fmt.Println(runner.Status.String())
}
