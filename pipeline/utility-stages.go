package pipeline

import (
	"sync"
	"time"

	actors "github.com/TACC/taccster-2021-tapis-actors"
)

// Map applies the provided operation to each message that passes through it. It sends
// errors from the operation to the errors channel, and will not send on a Message that
// caused an error in the operation.
func Map(messages <-chan actors.Message, errors chan<- error, operation func(actors.Message) (actors.Message, error)) <-chan actors.Message {
	out := make(chan actors.Message)
	go func() {
		defer close(out)
		for message := range messages {
			if newMessage, err := operation(message); err != nil {
				errors <- err
			} else {
				out <- newMessage
			}
		}
	}()
	return out
}

// Filter applies the provided closure to every Message, passing on only Messages that
// satisfy the closure's boolean output. If the closure returns an error, that will be
// passed on the errors channel.
func Filter(messages <-chan actors.Message, errors chan<- error, filter func(actors.Message) (bool, error)) <-chan actors.Message {
	out := make(chan actors.Message)
	go func() {
		defer close(out)
		for message := range messages {
			if ok, err := filter(message); err != nil {
				errors <- err
			} else if ok {
				out <- message
			}
		}
	}()
	return out
}

// Separate divides the input channel into two output channels based on some condition.
// If the condition is true, the current message goes to the first output channel,
// otherwise it goes to the second.
func Separate(messages <-chan actors.Message, errors chan<- error, condition func(actors.Message) (bool, error)) (<-chan actors.Message, <-chan actors.Message) {
	a := make(chan actors.Message)
	b := make(chan actors.Message)
	go func() {
		defer close(a)
		defer close(b)
		for message := range messages {
			if ok, err := condition(message); err != nil {
				errors <- err
			} else if ok {
				a <- message
			} else {
				b <- message
			}
		}
	}()
	return a, b
}

// Fork copies the input to two output channels, allowing a pipeline to
// diverge.
func Fork(messages <-chan actors.Message) (<-chan actors.Message, <-chan actors.Message) {
	a := make(chan actors.Message)
	b := make(chan actors.Message)
	go func() {
		defer close(a)
		defer close(b)
		for message := range messages {
			a <- message
			b <- message
		}
	}()
	return a, b
}

// Divide distributes the input channel across divisor new channels, which
// are returned in a slice.
func Divide(messages <-chan actors.Message, divisor uint) []chan actors.Message {
	chans := make([]chan actors.Message, divisor)
	for i := range chans {
		chans[i] = make(chan actors.Message)
	}
	go func() {
		defer func() {
			for _, channel := range chans {
				close(channel)
			}
		}()
		var count uint
		for message := range messages {
			chans[count%divisor] <- message
			count++
		}
	}()
	return chans
}

// Join performs a fan-in on the many input channels to combine their
// data into one output channel.
func Join(chans ...<-chan actors.Message) <-chan actors.Message {
	var wg sync.WaitGroup
	messages := make(chan actors.Message)
	go func() {
		defer close(messages)
		for _, channel := range chans {
			wg.Add(1)
			go func(c <-chan actors.Message) {
				defer wg.Done()
				for message := range c {
					messages <- message
				}
			}(channel)
		}
		wg.Wait()
	}()
	return messages
}

// Counter counts the messages that pass through it and emits a running
// Count after each one.
func Counter(messages <-chan actors.Message) (<-chan actors.Message, <-chan Count) {
	out := make(chan actors.Message)
	outCount := make(chan Count, 1)
	started := time.Now()
	current := Count{
		Messages: 0,
	}
	go func() {
		defer close(out)
		defer close(outCount)
		for message := range messages {
			current.Messages++
			current.Elapsed = time.Since(started)
			out <- message
			outCount <- current
		}
	}()
	return out, outCount
}

// Consume reads the channel until it is empty, consigning its
// contents to the void.
func Consume(channel <-chan actors.Message) {
	go func() {
		for range channel {
		}
	}()
}
