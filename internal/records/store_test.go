package records_test

import (
	"sync"

	"github.com/buker/go-graphql/internal/records"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var store *records.Store

	BeforeEach(func() {
		store = records.NewStore()
	})

	Describe("Create", func() {
		It("round-trips through Get", func() {
			created := store.Create(records.Input{
				Content: records.String("hi"),
				Author:  records.String("bob"),
			})

			fetched, err := store.Get(created.ID)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(fetched).Should(Equal(created))
			Expect(*fetched.Content).Should(Equal("hi"))
			Expect(*fetched.Author).Should(Equal("bob"))
		})

		It("generates 20 hex characters per id", func() {
			created := store.Create(records.Input{})
			Expect(created.ID).Should(MatchRegexp(`^[0-9a-f]{20}$`))
		})

		It("generates distinct ids for identical inputs", func() {
			input := records.Input{Content: records.String("same")}
			first := store.Create(input)
			second := store.Create(input)
			Expect(first.ID).ShouldNot(Equal(second.ID))
			Expect(store.Len()).Should(Equal(2))
		})

		It("keeps absent fields absent", func() {
			created := store.Create(records.Input{Author: records.String("alice")})
			Expect(created.Content).Should(BeNil())
			Expect(*created.Author).Should(Equal("alice"))
		})

		It("does not alias the caller's input", func() {
			content := "original"
			created := store.Create(records.Input{Content: &content})
			content = "mutated"

			fetched, err := store.Get(created.ID)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(*fetched.Content).Should(Equal("original"))
		})
	})

	Describe("Get", func() {
		It("fails with NotFound for an unknown id", func() {
			_, err := store.Get("nonexistent")
			Expect(err).Should(HaveOccurred())
			Expect(records.IsNotFound(err)).Should(BeTrue())
			Expect(err).Should(MatchError("no message exists with id nonexistent"))
		})

		It("returns snapshots", func() {
			created := store.Create(records.Input{Content: records.String("hi")})
			*created.Content = "changed by caller"

			fetched, err := store.Get(created.ID)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(*fetched.Content).Should(Equal("hi"))
		})
	})

	Describe("Update", func() {
		It("fails with NotFound for an unknown id", func() {
			_, err := store.Update("nonexistent", records.Input{Content: records.String("x")})
			Expect(records.IsNotFound(err)).Should(BeTrue())
			Expect(store.Len()).Should(Equal(0))
		})

		It("replaces the whole payload", func() {
			created := store.Create(records.Input{
				Content: records.String("hi"),
				Author:  records.String("bob"),
			})

			updated, err := store.Update(created.ID, records.Input{Content: records.String("bye")})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(updated.ID).Should(Equal(created.ID))
			Expect(*updated.Content).Should(Equal("bye"))
			Expect(updated.Author).Should(BeNil())

			fetched, err := store.Get(created.ID)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(fetched).Should(Equal(updated))
		})
	})

	It("serializes concurrent writers", func() {
		var wg sync.WaitGroup
		ids := make(chan string, 64)
		for i := 0; i < 64; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				record := store.Create(records.Input{Content: records.String("c")})
				_, err := store.Update(record.ID, records.Input{Author: records.String("a")})
				Expect(err).ShouldNot(HaveOccurred())
				ids <- record.ID
			}()
		}
		wg.Wait()
		close(ids)

		seen := map[string]bool{}
		for id := range ids {
			seen[id] = true
		}
		Expect(seen).Should(HaveLen(64))
		Expect(store.Len()).Should(Equal(64))
	})
})
