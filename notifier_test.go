package actors_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	actors "github.com/TACC/taccster-2021-tapis-actors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Notifier", func() {
	var (
		message  = actors.Message{JobID: "123-007", JobName: "demo", Status: "FINISHED"}
		mutex    sync.Mutex
		requests int
		lastText string
	)
	BeforeEach(func() {
		requests = 0
		lastText = ""
	})
	count := func() int {
		mutex.Lock()
		defer mutex.Unlock()
		return requests
	}

	Describe("Creating a Notifier", func() {
		Context("With invalid input", func() {
			It("Should return an error", func() {
				_, err := actors.NewNotifier("", time.Millisecond)
				Expect(err).Should(HaveOccurred())
				_, err = actors.NewNotifier("ftp://chat.example.com/hook", time.Millisecond)
				Expect(err).Should(HaveOccurred())
			})
		})
	})
	Describe("Handling a message", func() {
		Context("When the webhook accepts the post", func() {
			It("Delivers a single Slack-style payload", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					body, err := io.ReadAll(r.Body)
					var payload struct {
						Text string `json:"text"`
					}
					mutex.Lock()
					defer mutex.Unlock()
					requests++
					if err == nil && json.Unmarshal(body, &payload) == nil {
						lastText = payload.Text
					}
				}))
				defer server.Close()
				notifier, err := actors.NewNotifier(server.URL, time.Millisecond)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(notifier.Handle(message)).To(Succeed())
				Expect(count()).To(Equal(1))
				mutex.Lock()
				text := lastText
				mutex.Unlock()
				Expect(text).To(Equal("Job demo (123-007) is now FINISHED"))
			})
			It("Omits the job name from the text when the message has none", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					body, _ := io.ReadAll(r.Body)
					var payload struct {
						Text string `json:"text"`
					}
					mutex.Lock()
					defer mutex.Unlock()
					if json.Unmarshal(body, &payload) == nil {
						lastText = payload.Text
					}
				}))
				defer server.Close()
				notifier, err := actors.NewNotifier(server.URL, time.Millisecond)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(notifier.Handle(actors.Message{JobID: "123-007", Status: "RUNNING"})).To(Succeed())
				mutex.Lock()
				text := lastText
				mutex.Unlock()
				Expect(text).To(Equal("Job 123-007 is now RUNNING"))
			})
		})
		Context("When the webhook fails transiently", func() {
			It("Retries until the post succeeds", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					mutex.Lock()
					requests++
					failing := requests < 3
					mutex.Unlock()
					if failing {
						w.WriteHeader(http.StatusInternalServerError)
					}
				}))
				defer server.Close()
				notifier, err := actors.NewNotifier(server.URL, time.Millisecond)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(notifier.Handle(message)).To(Succeed())
				Expect(count()).To(Equal(3))
			})
		})
		Context("When the webhook rejects the payload", func() {
			It("Does not retry a client error", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					mutex.Lock()
					requests++
					mutex.Unlock()
					w.WriteHeader(http.StatusBadRequest)
				}))
				defer server.Close()
				notifier, err := actors.NewNotifier(server.URL, time.Millisecond)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(notifier.Handle(message)).ToNot(Succeed())
				Expect(count()).To(Equal(1))
			})
		})
		Context("With an incomplete status message", func() {
			It("Returns an error without posting", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					mutex.Lock()
					requests++
					mutex.Unlock()
				}))
				defer server.Close()
				notifier, err := actors.NewNotifier(server.URL, time.Millisecond)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(notifier.Handle(actors.Message{JobID: "123-007"})).ToNot(Succeed())
				Expect(notifier.Handle(actors.Message{Status: "FAILED"})).ToNot(Succeed())
				Expect(count()).To(Equal(0))
			})
		})
	})
})
