package pipeline_test

import (
	"fmt"
	"strings"

	actors "github.com/TACC/taccster-2021-tapis-actors"

	. "github.com/TACC/taccster-2021-tapis-actors/pipeline"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// feed sends count messages with sequential job IDs and closes the channel.
func feed(count int) chan actors.Message {
	messages := make(chan actors.Message)
	go func() {
		defer close(messages)
		for i := 0; i < count; i++ {
			messages <- actors.Message{JobID: fmt.Sprintf("job-%04d", i)}
		}
	}()
	return messages
}

var _ = Describe("Stages", func() {
	var (
		errorChan chan error
		errCount  int
	)
	BeforeEach(func() {
		errorChan = make(chan error)
		errCount = 0
	})
	Describe("Map", func() {
		Context("When the operation succeeds", func() {
			It("Applies the operation to every message", func() {
				outChan := Map(feed(5), errorChan, func(message actors.Message) (actors.Message, error) {
					message.Status = "SEEN"
					return message, nil
				})
				count := 0
				for message := range outChan {
					count++
					Expect(message.Status).To(Equal("SEEN"))
				}
				Expect(count).To(Equal(5))
			})
		})
		Context("When the operation fails", func() {
			It("Sends the error and drops the message", func() {
				go func() {
					for range errorChan {
						errCount++
					}
				}()
				outChan := Map(feed(5), errorChan, func(message actors.Message) (actors.Message, error) {
					if strings.HasSuffix(message.JobID, "0") {
						return message, fmt.Errorf("Something terrible happened")
					}
					return message, nil
				})
				count := 0
				for range outChan {
					count++
				}
				close(errorChan)
				Expect(count).To(Equal(4))
				Eventually(func() int { return errCount }).Should(Equal(1))
			})
		})
	})
	Describe("Filter", func() {
		It("Passes on only messages that satisfy the closure", func() {
			outChan := Filter(feed(6), errorChan, func(message actors.Message) (bool, error) {
				return strings.HasSuffix(message.JobID, "2") || strings.HasSuffix(message.JobID, "4"), nil
			})
			count := 0
			for range outChan {
				count++
			}
			Expect(count).To(Equal(2))
		})
	})
	Describe("Separate", func() {
		It("Routes messages to the matching channel", func() {
			matching, rest := Separate(feed(6), errorChan, func(message actors.Message) (bool, error) {
				return strings.HasSuffix(message.JobID, "0"), nil
			})
			var matchCount, restCount int
			done := make(chan struct{})
			go func() {
				defer close(done)
				for range rest {
					restCount++
				}
			}()
			for range matching {
				matchCount++
			}
			<-done
			Expect(matchCount).To(Equal(1))
			Expect(restCount).To(Equal(5))
		})
	})
	Describe("Fork", func() {
		It("Copies every message to both outputs", func() {
			a, b := Fork(feed(4))
			var aCount, bCount int
			done := make(chan struct{})
			go func() {
				defer close(done)
				for range b {
					bCount++
				}
			}()
			for range a {
				aCount++
			}
			<-done
			Expect(aCount).To(Equal(4))
			Expect(bCount).To(Equal(4))
		})
	})
	Describe("Divide and Join", func() {
		It("Distributes messages and merges them back without loss", func() {
			streams := Divide(feed(10), 3)
			Expect(streams).To(HaveLen(3))
			readOnly := make([]<-chan actors.Message, len(streams))
			for i, stream := range streams {
				readOnly[i] = stream
			}
			merged := Join(readOnly...)
			seen := make(map[string]bool)
			for message := range merged {
				seen[message.JobID] = true
			}
			Expect(seen).To(HaveLen(10))
		})
	})
	Describe("Counter", func() {
		It("Counts the messages that pass through it", func() {
			outChan, countChan := Counter(feed(5))
			Consume(outChan)
			var last Count
			for count := range countChan {
				last = count
			}
			Expect(last.Messages).To(Equal(uint(5)))
			Expect(last.Elapsed).To(BeNumerically(">", 0))
		})
	})
})
