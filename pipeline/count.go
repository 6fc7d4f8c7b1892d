package pipeline

import "time"

// Count represents basic statistics about the messages that have passed
// through a Counter pipeline stage. It records the number of Messages
// that it has seen, as well as the duration since the associated Counter
// stage was started. This information can be used to calculate statistics
// about the pipeline's performance, especially when multiple counters in
// different pipeline regions are employed.
type Count struct {
	Messages uint
	Elapsed  time.Duration
}

// Rate returns the rate of message flow in messages per second
func (c Count) Rate() float64 {
	return float64(c.Messages) / c.Elapsed.Seconds()
}

// RatePerMinute returns the rate of message flow in messages per minute
func (c Count) RatePerMinute() float64 {
	return c.Rate() * 60
}
