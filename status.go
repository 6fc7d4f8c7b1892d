package actors

import (
	"fmt"
	"time"
)

// currentStatus monitors the current status of a pipeline run.
type currentStatus struct {
	totalMessages uint
	numberHandled uint
	runStarted    time.Time
	runDuration   time.Duration
}

// percentComplete computes the percentage of the messages that have
// finished the pipeline.
func (s *currentStatus) percentComplete() float64 {
	if s.totalMessages <= 0 {
		return 0.0
	}
	return float64(s.numberHandled) / float64(s.totalMessages) * 100
}

// timeRemaining computes the amount of run time that remains based upon
// the observed handling rate and the number of messages remaining. Before
// any message completes the rate is zero and no estimate is possible, so
// it reports zero rather than dividing by it.
func (s *currentStatus) timeRemaining() time.Duration {
	rate := s.rate()
	if rate == 0 {
		return time.Duration(0)
	}
	finishedIn := float64(s.totalMessages-s.numberHandled) / rate
	timeRemaining := time.Duration(int(finishedIn)) * time.Second
	return timeRemaining
}

// rate computes the handling rate of the observed run in messages per second.
func (s *currentStatus) rate() float64 {
	if s.runStarted == (time.Time{}) {
		return 0.0
	} else if s.runDuration != (time.Duration(0)) {
		return float64(s.totalMessages) / s.runDuration.Seconds()
	}
	elapsed := time.Since(s.runStarted)
	rate := float64(s.numberHandled) / elapsed.Seconds()
	return rate
}

// String generates a status message out of the currentStatus struct
func (s *currentStatus) String() string {
	if s.runStarted == (time.Time{}) {
		return "Pipeline run not started yet"
	} else if s.runDuration != time.Duration(0) {
		return fmt.Sprintf(
			"Run finished in %s at approximately %2.2f messages/sec",
			s.runDuration,
			s.rate())
	}
	return fmt.Sprintf(
		"[%s] %3.2f%% Handled\tAverage Rate %03.2f messages/sec\t%s Remaining",
		time.Now(),
		s.percentComplete(),
		s.rate(),
		s.timeRemaining())
}

// Status tracks the progress of a pipeline run. It is safe to query from
// any goroutine while the run is in flight.
type Status struct {
	current          currentStatus
	outputChannel    chan string
	messageCompleted chan struct{}
	requestStatus    chan chan *currentStatus
	signalStart      chan struct{}
	signalStop       chan struct{}
}

// NewStatus creates a new Status for a run over the given number of
// messages. Progress strings are sent on the output channel.
func NewStatus(numberMessages uint, output chan string) *Status {
	completed := make(chan struct{})
	requestStatus := make(chan chan *currentStatus)
	signalStart, signalStop := make(chan struct{}), make(chan struct{})
	stat := &Status{
		messageCompleted: completed,
		requestStatus:    requestStatus,
		outputChannel:    output,
		signalStart:      signalStart,
		signalStop:       signalStop,
		current: currentStatus{
			totalMessages: numberMessages,
			numberHandled: 0,
		},
	}
	go func(s *Status) {
		for {
			select {
			case <-s.signalStart:
				s.current.runStarted = time.Now()
				s.signalStart = nil
			case <-s.signalStop:
				s.current.runDuration = time.Since(s.current.runStarted)
				s.signalStop = nil
			case <-s.messageCompleted:
				s.current.numberHandled++
			case sendBack := <-s.requestStatus:
				sendBack <- &currentStatus{
					totalMessages: s.current.totalMessages,
					numberHandled: s.current.numberHandled,
					runStarted:    s.current.runStarted,
					runDuration:   s.current.runDuration,
				}
			}
		}
	}(stat)
	return stat
}

// Start begins timing the run.
func (s *Status) Start() {
	s.signalStart <- struct{}{}
}

// Stop finalizes the duration of the run.
func (s *Status) Stop() {
	s.signalStop <- struct{}{}
}

// MessageComplete marks that one message has finished the pipeline. Call
// this each time a message is handled successfully.
func (s *Status) MessageComplete() {
	s.messageCompleted <- struct{}{}
}

// getCurrent retrieves a pointer to a copy of the current run status.
func (s *Status) getCurrent() *currentStatus {
	stat := make(chan *currentStatus)
	defer close(stat)
	s.requestStatus <- stat
	return <-stat
}

// NumberHandled returns how many messages have finished the pipeline.
func (s *Status) NumberHandled() uint {
	return s.getCurrent().numberHandled
}

// TotalMessages returns how many messages the run will handle in total.
func (s *Status) TotalMessages() uint {
	return s.getCurrent().totalMessages
}

// Rate computes the observed handling rate in messages / second.
func (s *Status) Rate() float64 {
	return s.getCurrent().rate()
}

// TimeRemaining estimates the amount of time remaining in the run.
func (s *Status) TimeRemaining() time.Duration {
	return s.getCurrent().timeRemaining()
}

// PercentComplete returns how much of the run is complete.
func (s *Status) PercentComplete() float64 {
	return s.getCurrent().percentComplete()
}

// String creates a status message from the current state of the status.
func (s *Status) String() string {
	return s.getCurrent().String()
}

// Print sends the current status of the run to the output channel.
func (s *Status) Print() {
	s.outputChannel <- s.String()
}
