package random_test

import (
	"github.com/buker/go-graphql/internal/random"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Generator", func() {
	var gen *random.Generator

	BeforeEach(func() {
		gen = random.New(42)
	})

	Describe("RollDice", func() {
		It("rolls the requested number of six-sided dice", func() {
			rolls := gen.RollDice(5, 6)
			Expect(rolls).Should(HaveLen(5))
			for _, r := range rolls {
				Expect(r).Should(BeNumerically(">=", 1))
				Expect(r).Should(BeNumerically("<=", 6))
			}
		})

		It("defaults to six sides", func() {
			for _, r := range gen.RollDice(200, 0) {
				Expect(r).Should(BeNumerically(">=", 1))
				Expect(r).Should(BeNumerically("<=", random.DefaultSides))
			}
		})

		It("covers every face of a small die", func() {
			seen := map[int]bool{}
			for _, r := range gen.RollDice(2000, 3) {
				seen[r] = true
			}
			Expect(seen).Should(Equal(map[int]bool{1: true, 2: true, 3: true}))
		})

		It("returns nothing for a negative count", func() {
			Expect(gen.RollDice(-1, 6)).Should(BeEmpty())
		})
	})

	Describe("QuoteOfTheDay", func() {
		It("returns both quotes over many calls", func() {
			seen := map[string]int{}
			for i := 0; i < 1000; i++ {
				seen[gen.QuoteOfTheDay()]++
			}
			Expect(seen).Should(HaveLen(2))
			Expect(seen[random.Quotes[0]]).Should(BeNumerically("~", 500, 100))
		})
	})

	Describe("Fraction", func() {
		It("stays in [0, 1)", func() {
			for i := 0; i < 1000; i++ {
				f := gen.Fraction()
				Expect(f).Should(BeNumerically(">=", 0))
				Expect(f).Should(BeNumerically("<", 1))
			}
		})
	})

	Describe("Die", func() {
		It("defaults to six sides", func() {
			Expect(gen.Die(0).NumSides).Should(Equal(6))
			Expect(gen.Die(20).NumSides).Should(Equal(20))
		})

		It("rolls within its sides", func() {
			die := gen.Die(4)
			Expect(die.RollOnce()).Should(BeNumerically("<=", 4))
			rolls := die.Roll(10)
			Expect(rolls).Should(HaveLen(10))
			for _, r := range rolls {
				Expect(r).Should(BeNumerically(">=", 1))
				Expect(r).Should(BeNumerically("<=", 4))
			}
		})
	})

	It("is deterministic for a fixed seed", func() {
		Expect(random.New(7).RollDice(10, 6)).Should(Equal(random.New(7).RollDice(10, 6)))
	})
})
