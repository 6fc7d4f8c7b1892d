package actors_test

import (
	actors "github.com/TACC/taccster-2021-tapis-actors"
	"github.com/TACC/taccster-2021-tapis-actors/auth/mock"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Submitter", func() {
	var (
		recorder  *mock.RecorderGateway
		submitter *actors.Submitter
		err       error
	)
	BeforeEach(func() {
		recorder = mock.NewRecorderGateway()
		submitter, err = actors.NewSubmitter(recorder, "wordcount-1.0", "01:00:00", true, "notify-actor", "TACC_secret_nonce")
		Expect(err).ShouldNot(HaveOccurred())
	})
	Describe("Creating a Submitter", func() {
		Context("With invalid input", func() {
			It("Should return an error", func() {
				_, err = actors.NewSubmitter(nil, "wordcount-1.0", "", false, "", "")
				Expect(err).Should(HaveOccurred())
				_, err = actors.NewSubmitter(recorder, "", "", false, "", "")
				Expect(err).Should(HaveOccurred())
			})
		})
		Context("With a notify actor but no nonce", func() {
			It("Should return an error", func() {
				_, err = actors.NewSubmitter(recorder, "wordcount-1.0", "", false, "notify-actor", "")
				Expect(err).Should(HaveOccurred())
			})
		})
	})
	Describe("Handling a message", func() {
		Context("With a staged input file", func() {
			It("Submits a job binding the file to the app input", func() {
				_, err = submitter.Handle(actors.Message{File: "agave://corral/inputs/input.txt", JobName: "demo"})
				Expect(err).ShouldNot(HaveOccurred())
				requests := recorder.Requests()
				Expect(requests).To(HaveLen(1))
				Expect(requests[0].Name).To(Equal("demo"))
				Expect(requests[0].AppID).To(Equal("wordcount-1.0"))
				Expect(requests[0].Archive).To(BeTrue())
				Expect(requests[0].MaxRunTime).To(Equal("01:00:00"))
				Expect(requests[0].Inputs["inputFile"]).To(Equal([]string{"agave://corral/inputs/input.txt"}))
			})
			It("Attaches a persistent notification aimed at the notify actor", func() {
				_, err = submitter.Handle(actors.Message{File: "agave://corral/inputs/input.txt"})
				Expect(err).ShouldNot(HaveOccurred())
				requests := recorder.Requests()
				Expect(requests).To(HaveLen(1))
				Expect(requests[0].Notifications).To(HaveLen(1))
				notification := requests[0].Notifications[0]
				Expect(notification.Event).To(Equal("*"))
				Expect(notification.Persistent).To(BeTrue())
				Expect(notification.URL).To(ContainSubstring("/actors/v2/notify-actor/messages"))
				Expect(notification.URL).To(ContainSubstring("x-nonce=TACC_secret_nonce"))
				Expect(notification.URL).To(ContainSubstring("job_id=${JOB_ID}"))
				Expect(notification.URL).To(ContainSubstring("status=${JOB_STATUS}"))
			})
			It("Returns the job that the jobs service created", func() {
				job, err := submitter.Handle(actors.Message{File: "agave://corral/inputs/input.txt", JobName: "demo"})
				Expect(err).ShouldNot(HaveOccurred())
				jobs := recorder.Jobs()
				Expect(jobs).To(HaveLen(1))
				Expect(job.ID).To(Equal(jobs[0].ID))
				Expect(job.ID).ToNot(BeEmpty())
				Expect(job.Status).To(Equal("PENDING"))
			})
			It("Derives a job name from the app and file when none is given", func() {
				_, err = submitter.Handle(actors.Message{File: "agave://corral/inputs/input.txt"})
				Expect(err).ShouldNot(HaveOccurred())
				requests := recorder.Requests()
				Expect(requests).To(HaveLen(1))
				Expect(requests[0].Name).To(Equal("wordcount-1.0-input"))
			})
		})
		Context("Without a notify actor", func() {
			It("Submits no notifications", func() {
				plain, err := actors.NewSubmitter(recorder, "wordcount-1.0", "", false, "", "")
				Expect(err).ShouldNot(HaveOccurred())
				_, err = plain.Handle(actors.Message{File: "agave://corral/inputs/input.txt"})
				Expect(err).ShouldNot(HaveOccurred())
				requests := recorder.Requests()
				Expect(requests).To(HaveLen(1))
				Expect(requests[0].Notifications).To(BeEmpty())
			})
		})
		Context("With no input file", func() {
			It("Returns an error and submits nothing", func() {
				_, err = submitter.Handle(actors.Message{JobName: "demo"})
				Expect(err).Should(HaveOccurred())
				Expect(recorder.Requests()).To(BeEmpty())
			})
		})
		Context("When the gateway rejects the submission", func() {
			It("Returns an error", func() {
				failing, err := actors.NewSubmitter(mock.NewErrorGateway(), "wordcount-1.0", "", false, "", "")
				Expect(err).ShouldNot(HaveOccurred())
				_, err = failing.Handle(actors.Message{File: "agave://corral/inputs/input.txt"})
				Expect(err).Should(HaveOccurred())
			})
		})
	})
})
