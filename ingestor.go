package actors

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/TACC/taccster-2021-tapis-actors/auth"
)

// Ingestor is the upload actor at the head of the pipeline. For each
// message it imports the named remote file into a storage system and
// then messages the next actor with the agave URI of the ingested file.
type Ingestor struct {
	gateway   auth.Gateway
	system    string
	destPath  string
	nextActor string
}

// NewIngestor returns an ingestor that stages files onto the given
// storage system under destPath and hands them off to the actor with
// ID nextActor.
func NewIngestor(gateway auth.Gateway, system, destPath, nextActor string) (*Ingestor, error) {
	if gateway == nil {
		return nil, fmt.Errorf("Unable to ingest with a nil gateway")
	}
	if system == "" {
		return nil, fmt.Errorf("Storage system cannot be the empty string")
	}
	if nextActor == "" {
		return nil, fmt.Errorf("Next actor ID cannot be the empty string")
	}
	return &Ingestor{
		gateway:   gateway,
		system:    system,
		destPath:  destPath,
		nextActor: nextActor,
	}, nil
}

// Handle imports the file named by the message's url and notifies the
// next actor in the pipeline.
func (i *Ingestor) Handle(message Message) error {
	if message.URL == "" {
		return fmt.Errorf("Ingest message is missing a source url")
	}
	source, err := url.Parse(message.URL)
	if err != nil {
		return fmt.Errorf("Failed to parse source url %s: %s", message.URL, err)
	}
	fileName := path.Base(source.Path)
	if fileName == "." || fileName == "/" {
		return fmt.Errorf("Source url %s does not name a file", message.URL)
	}

	system := i.system
	if message.System != "" {
		system = message.System
	}
	destPath := i.destPath
	if message.Path != "" {
		destPath = message.Path
	}

	info, err := i.gateway.ImportData(system, destPath, fileName, message.URL)
	if err != nil {
		return fmt.Errorf("Failed to ingest %s: %s", message.URL, err)
	}
	if info.Path == "" {
		info.Path = strings.TrimSuffix(destPath, "/") + "/" + fileName
		info.System = system
	}

	next := Message{
		File:    info.URI(),
		JobName: message.JobName,
	}
	encoded, err := next.Encode()
	if err != nil {
		return err
	}
	_, err = i.gateway.SendMessage(i.nextActor, encoded)
	if err != nil {
		return fmt.Errorf("Failed to notify actor %s about %s: %s", i.nextActor, info.URI(), err)
	}
	return nil
}
