package e2e

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wesleyorama2/diaries/internal/diaries"
	"github.com/wesleyorama2/diaries/internal/http"
)

const (
	diaryTitle       = "Diary title"
	diaryDescription = "Diary description"
)

var longTitle = strings.Repeat("t", diaries.MaxTitleLength+1)

// addDiary creates a diary and returns it as the service stored it.
func addDiary() diaries.Diary {
	GinkgoHelper()

	resp, err := api.Add(ctx, diaryTitle, diaryDescription)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(201))

	diary, err := diaries.DecodeDiary(resp)
	Expect(err).NotTo(HaveOccurred())
	return diary
}

var _ = Describe("Diaries", func() {
	Describe("GET /diaries", func() {
		It("should list a diary that was just created", func() {
			created := addDiary()

			resp, err := api.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))
			Expect(diaries.ValidateDiaries(resp)).To(Succeed())

			list, err := diaries.DecodeDiaries(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Contains(created.ID)).To(BeTrue())
		})
	})

	Describe("GET /diaries/{id}", func() {
		It("should return an existing diary", func() {
			created := addDiary()

			resp, err := api.Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))

			diary, err := diaries.DecodeDiary(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(diary).To(Equal(created))
		})

		It("should return 404 for a diary that was never created", func() {
			resp, err := api.Get(ctx, uuid.NewString())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
		})

		It("should return 400 for an invalid id", func() {
			resp, err := api.Get(ctx, "invalid-guid")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(400))
		})

		It("should describe the exchange when no payload came back", func() {
			id := uuid.NewString()

			resp, err := api.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			_, err = resp.Body()
			Expect(err).To(MatchError(http.ErrMissingBody))

			var missing *http.MissingBodyError
			Expect(errors.As(err, &missing)).To(BeTrue())
			Expect(missing.Method).To(Equal("GET"))
			Expect(missing.Target).To(HaveSuffix("/diaries/" + id))
			Expect(missing.StatusCode).To(Equal(404))
			Expect(missing.Reason).To(Equal("Not Found"))
			Expect(err.Error()).To(ContainSubstring("Response status code: 404"))
		})
	})

	Describe("POST /diaries", func() {
		It("should create a diary", func() {
			resp, err := api.Add(ctx, diaryTitle, diaryDescription)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(201))
			Expect(diaries.ValidateDiary(resp)).To(Succeed())

			body, err := resp.Body()
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(HaveKeyWithValue("id", Not(BeEmpty())))
			Expect(body).To(HaveKeyWithValue("title", diaryTitle))
			Expect(body).To(HaveKeyWithValue("description", diaryDescription))
		})

		DescribeTable("should reject invalid fields with 400",
			func(title, description string) {
				resp, err := api.Add(ctx, title, description)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(400))
				Expect(resp.Reason).NotTo(BeEmpty())
			},
			Entry("empty title", "", diaryDescription),
			Entry("empty description", diaryTitle, ""),
			Entry("title longer than the limit", longTitle, diaryDescription),
		)
	})

	Describe("PUT /diaries/{id}", func() {
		It("should replace the fields of an existing diary", func() {
			created := addDiary()

			resp, err := api.Update(ctx, created.ID, "New title", "New description")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))

			resp, err = api.Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())

			diary, err := diaries.DecodeDiary(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(diary.Title).To(Equal("New title"))
			Expect(diary.Description).To(Equal("New description"))
		})

		It("should return 404 for a diary that was never created", func() {
			resp, err := api.Update(ctx, uuid.NewString(), diaryTitle, diaryDescription)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
		})

		It("should return 400 for an invalid id", func() {
			resp, err := api.Update(ctx, "invalid-guid", diaryTitle, diaryDescription)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(400))
		})

		DescribeTable("should reject invalid fields with 400",
			func(title, description string) {
				created := addDiary()

				resp, err := api.Update(ctx, created.ID, title, description)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(400))
			},
			Entry("empty title", "", diaryDescription),
			Entry("empty description", diaryTitle, ""),
			Entry("title longer than the limit", longTitle, diaryDescription),
		)
	})

	Describe("DELETE /diaries/{id}", func() {
		It("should remove an existing diary", func() {
			created := addDiary()

			resp, err := api.Remove(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))

			resp, err = api.Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
		})

		It("should return 400 for an invalid id", func() {
			resp, err := api.Remove(ctx, "invalid-guid")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(400))
		})

		It("should return 404 for a diary that was never created", func() {
			resp, err := api.Remove(ctx, uuid.NewString())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
		})
	})
})
