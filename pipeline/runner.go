package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	actors "github.com/TACC/taccster-2021-tapis-actors"
	"github.com/TACC/taccster-2021-tapis-actors/auth"
	"github.com/google/uuid"
)

// localSubmitActor is the placeholder actor ID that the ingest handler
// addresses inside a local run. The loopback gateway intercepts the
// message before it would reach the platform.
const localSubmitActor = "local-submit"

// Config carries the handler configuration for a local pipeline run.
type Config struct {
	System     string
	DestPath   string
	AppID      string
	MaxRunTime string
	Archive    bool
	WebhookURL string
	RetryWait  time.Duration
}

// Runner drives a batch of messages through the ingest, submit, and
// notify handlers in-process.
type Runner struct {
	outputChannel chan string
	Status        *actors.Status
	gateway       auth.Gateway
	config        Config
	notifier      *actors.Notifier
	source        []actors.Message
	intoPipeline  chan actors.Message
	pipelineOut   <-chan actors.Message
	counts        <-chan Count
	errors        chan error
	maxHandlers   uint
}

// NewRunner builds a runner that will process the given messages against
// the gateway, with up to maxHandlers messages in flight at once.
// Progress output is written to outputFile.
func NewRunner(gateway auth.Gateway, config Config, messages []actors.Message, maxHandlers uint, outputFile io.Writer) (*Runner, error) {
	if gateway == nil {
		return nil, fmt.Errorf("Unable to run against a nil gateway")
	}
	if len(messages) < 1 {
		return nil, fmt.Errorf("Unable to run an empty batch of messages")
	}
	if maxHandlers < 1 {
		return nil, fmt.Errorf("Unable to run with %d handlers (minimum 1 required)", maxHandlers)
	}
	if config.System == "" {
		return nil, fmt.Errorf("Storage system cannot be the empty string")
	}
	if config.AppID == "" {
		return nil, fmt.Errorf("App ID cannot be the empty string")
	}
	notifier, err := actors.NewNotifier(config.WebhookURL, config.RetryWait)
	if err != nil {
		return nil, err
	}

	outputChannel := make(chan string, 10)

	// Asynchronously print everything that comes in on this channel
	go func(output io.Writer, incoming chan string) {
		for message := range incoming {
			_, err := fmt.Fprintln(output, message)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error writing to output log: %s\n", err)
			}
		}
	}(outputFile, outputChannel)

	status := actors.NewStatus(uint(len(messages)), outputChannel)

	runner := &Runner{
		outputChannel: outputChannel,
		Status:        status,
		gateway:       gateway,
		config:        config,
		notifier:      notifier,
		source:        messages,
		maxHandlers:   maxHandlers,
	}

	// Initialize pipeline, but don't pass in data
	intoPipeline := make(chan actors.Message)
	errors := make(chan error)
	streams := Divide(intoPipeline, maxHandlers)
	doneStreams := make([]<-chan actors.Message, maxHandlers)
	for index, stream := range streams {
		doneStreams[index] = Map(stream, errors, runner.process)
	}
	out := Join(doneStreams...)
	out, counts := Counter(out)

	runner.intoPipeline = intoPipeline
	runner.pipelineOut = out
	runner.counts = counts
	runner.errors = errors
	return runner, nil
}

// process runs a single message all the way down the chain: ingest the
// file, submit the job, post the synthesized status callback. It returns
// the final status message.
func (r *Runner) process(message actors.Message) (actors.Message, error) {
	capture := &loopbackGateway{Gateway: r.gateway}
	ingestor, err := actors.NewIngestor(capture, r.config.System, r.config.DestPath, localSubmitActor)
	if err != nil {
		return message, err
	}
	if err = ingestor.Handle(message); err != nil {
		return message, err
	}
	next, ok := capture.take()
	if !ok {
		return message, fmt.Errorf("Ingest of %s produced no downstream message", message.URL)
	}
	submitter, err := actors.NewSubmitter(capture, r.config.AppID, r.config.MaxRunTime, r.config.Archive, "", "")
	if err != nil {
		return message, err
	}
	if _, err = submitter.Handle(next); err != nil {
		return message, err
	}
	jobStatus, ok := capture.take()
	if !ok {
		return message, fmt.Errorf("Submission of %s produced no status message", next.File)
	}
	if err = r.notifier.Handle(jobStatus); err != nil {
		return message, err
	}
	r.outputChannel <- fmt.Sprintf("Job %s is %s", jobStatus.JobID, jobStatus.Status)
	return jobStatus, nil
}

// Run pushes the batch through the pipeline. It only returns after every
// message has been handled or failed.
func (r *Runner) Run() error {
	var errCount uint = 0
	r.Status.Start()
	// drain the handled counts
	go func() {
		defer r.Status.Stop()
		for range r.counts {
			r.Status.MessageComplete()
		}
	}()
	// close the errors channel after the pipeline output is empty
	go func() {
		defer close(r.errors)
		for range r.pipelineOut {
		}
	}()

	// Drain errors concurrently so that an early failure cannot stall the
	// feed below.
	collected := make(chan uint)
	go func() {
		var count uint
		for e := range r.errors {
			count++
			r.outputChannel <- e.Error()
		}
		collected <- count
	}()

	// start sending messages through the pipeline.
	for _, message := range r.source {
		r.intoPipeline <- message
	}
	close(r.intoPipeline)
	// Wait for the error drain, which finishes once the errors channel is
	// closed above.
	errCount = <-collected
	if errCount == 0 {
		return nil
	}
	return fmt.Errorf("Encountered %d errors, check log output.", errCount)
}

// loopbackGateway wraps a Gateway, capturing actor messages instead of
// delivering them and synthesizing the job status callback that the jobs
// service would deliver in production.
type loopbackGateway struct {
	auth.Gateway
	captured []actors.Message
}

// SendMessage captures the message instead of delivering it and fabricates
// an execution ID for it.
func (l *loopbackGateway) SendMessage(actorID string, message []byte) (string, error) {
	parsed, err := actors.ParseMessage(string(message))
	if err != nil {
		return "", err
	}
	l.captured = append(l.captured, parsed)
	return uuid.NewString(), nil
}

// SubmitJob submits through the wrapped gateway and captures the status
// message that the jobs service would POST to the notify actor.
func (l *loopbackGateway) SubmitJob(request auth.JobRequest) (auth.Job, error) {
	job, err := l.Gateway.SubmitJob(request)
	if err != nil {
		return job, err
	}
	l.captured = append(l.captured, actors.Message{
		JobID:   job.ID,
		JobName: job.Name,
		Status:  job.Status,
	})
	return job, nil
}

// take pops the oldest captured message.
func (l *loopbackGateway) take() (actors.Message, bool) {
	if len(l.captured) == 0 {
		return actors.Message{}, false
	}
	message := l.captured[0]
	l.captured = l.captured[1:]
	return message, true
}
