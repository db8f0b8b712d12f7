package conversation_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"LLMClients/internal/conversation"
	"LLMClients/internal/llm"
)

var _ = Describe("State", func() {
	Describe("New", func() {
		It("starts empty without a system prompt", func() {
			s := conversation.New("")

			Expect(s.Snapshot()).To(BeEmpty())
			Expect(s.Len()).To(Equal(0))
		})

		It("seeds the system message first", func() {
			s := conversation.New("You are a helpful assistant.")

			snap := s.Snapshot()
			Expect(snap).To(HaveLen(1))
			Expect(snap[0].Role).To(Equal(llm.RoleSystem))
			Expect(snap[0].Text()).To(Equal("You are a helpful assistant."))
			Expect(s.Len()).To(Equal(0))
		})
	})

	Describe("Append", func() {
		It("returns messages in insertion order, unmodified", func() {
			s := conversation.New("")
			for i := 0; i < 25; i++ {
				role := llm.RoleUser
				if i%2 == 1 {
					role = llm.RoleAssistant
				}
				s.AppendText(role, fmt.Sprintf("message %d", i))
			}

			snap := s.Snapshot()
			Expect(snap).To(HaveLen(25))
			for i, m := range snap {
				Expect(m.Text()).To(Equal(fmt.Sprintf("message %d", i)))
			}
			Expect(snap[0].Role).To(Equal(llm.RoleUser))
			Expect(snap[1].Role).To(Equal(llm.RoleAssistant))
		})

		It("keeps mixed text and image parts", func() {
			s := conversation.New("")
			s.Append(llm.RoleUser,
				llm.TextPart("look"),
				llm.ImagePart(llm.Image{MediaType: "image/png", Data: "AAAA"}),
			)

			snap := s.Snapshot()
			Expect(snap[0].Parts).To(HaveLen(2))
			Expect(snap[0].Parts[1].Image.MediaType).To(Equal("image/png"))
		})

		It("does not alias the caller's message", func() {
			s := conversation.New("")
			msg := llm.Message{Role: llm.RoleUser, Parts: []llm.Part{llm.TextPart("original")}}
			s.AppendMessage(msg)

			msg.Parts[0].Text = "changed"

			Expect(s.Snapshot()[0].Text()).To(Equal("original"))
		})
	})

	Describe("Snapshot", func() {
		It("does not expose stored state to mutation", func() {
			s := conversation.New("sys")
			s.AppendText(llm.RoleUser, "hi")

			snap := s.Snapshot()
			snap[1].Parts[0].Text = "tampered"
			snap[0] = llm.NewTextMessage(llm.RoleAssistant, "replaced")

			fresh := s.Snapshot()
			Expect(fresh).To(HaveLen(2))
			Expect(fresh[0].Role).To(Equal(llm.RoleSystem))
			Expect(fresh[1].Text()).To(Equal("hi"))
		})
	})

	Describe("Clear", func() {
		DescribeTable("always yields the seed only, regardless of history length",
			func(system string, n int) {
				s := conversation.New(system)
				for i := 0; i < n; i++ {
					s.AppendText(llm.RoleUser, "q")
					s.AppendText(llm.RoleAssistant, "a")
				}

				s.Clear()

				snap := s.Snapshot()
				Expect(s.Len()).To(Equal(0))
				if system == "" {
					Expect(snap).To(BeEmpty())
				} else {
					Expect(snap).To(HaveLen(1))
					Expect(snap[0].Role).To(Equal(llm.RoleSystem))
					Expect(snap[0].Text()).To(Equal(system))
				}
			},
			Entry("empty, no seed", "", 0),
			Entry("short history, no seed", "", 1),
			Entry("long history, no seed", "", 100),
			Entry("empty, seeded", "Be brief.", 0),
			Entry("long history, seeded", "Be brief.", 100),
		)
	})

	Describe("SetSystem", func() {
		It("replaces the seed without touching history", func() {
			s := conversation.New("old")
			s.AppendText(llm.RoleUser, "hi")

			s.SetSystem("new")

			snap := s.Snapshot()
			Expect(snap).To(HaveLen(2))
			Expect(snap[0].Text()).To(Equal("new"))
			Expect(snap[1].Text()).To(Equal("hi"))
			Expect(s.System()).To(Equal("new"))
		})

		It("removes the seed when empty", func() {
			s := conversation.New("old")
			s.SetSystem("")

			Expect(s.Snapshot()).To(BeEmpty())
		})
	})
})
