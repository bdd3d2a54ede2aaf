package schema_test

import (
	"github.com/buker/go-graphql/internal/random"
	"github.com/graphql-go/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Schema", func() {
	var s graphql.Schema

	BeforeEach(func() {
		s = newSchema()
	})

	Describe("messages", func() {
		createMessage := `mutation ($input: MessageInput) {
			createMessage(input: $input) { id content author }
		}`

		It("creates, fails a bad lookup, replaces and refetches", func() {
			result := executeQueryWithParams(s, createMessage, map[string]interface{}{
				"input": map[string]interface{}{"content": "hi", "author": "bob"},
			})
			Expect(result.Errors).Should(BeEmpty())
			created := data(result)["createMessage"].(map[string]interface{})
			Expect(created["content"]).Should(Equal("hi"))
			Expect(created["author"]).Should(Equal("bob"))
			id := created["id"].(string)
			Expect(id).Should(HaveLen(20))

			result = executeQuery(s, `{ getMessage(id: "nonexistent") { id } }`)
			Expect(result.Errors).Should(HaveLen(1))
			Expect(result.Errors[0].Message).Should(Equal("no message exists with id nonexistent"))
			Expect(result.Errors[0].Path).Should(Equal([]interface{}{"getMessage"}))
			Expect(data(result)["getMessage"]).Should(BeNil())

			result = executeQueryWithParams(s, `mutation ($id: ID!) {
				updateMessage(id: $id, input: {content: "bye"}) { id content author }
			}`, map[string]interface{}{"id": id})
			Expect(result.Errors).Should(BeEmpty())
			Expect(data(result)["updateMessage"]).Should(Equal(map[string]interface{}{
				"id":      id,
				"content": "bye",
				"author":  nil,
			}))

			result = executeQueryWithParams(s, `query ($id: ID!) {
				getMessage(id: $id) { id content author }
			}`, map[string]interface{}{"id": id})
			Expect(result.Errors).Should(BeEmpty())
			Expect(data(result)["getMessage"]).Should(Equal(map[string]interface{}{
				"id":      id,
				"content": "bye",
				"author":  nil,
			}))
		})

		It("creates a message without input", func() {
			result := executeQuery(s, `mutation { createMessage { id content author } }`)
			Expect(result.Errors).Should(BeEmpty())
			created := data(result)["createMessage"].(map[string]interface{})
			Expect(created["content"]).Should(BeNil())
			Expect(created["author"]).Should(BeNil())
		})

		It("rejects updates of unknown messages on the field only", func() {
			result := executeQuery(s, `mutation {
				updateMessage(id: "missing", input: {content: "x"}) { id }
				createMessage(input: {content: "y"}) { content }
			}`)
			Expect(result.Errors).Should(HaveLen(1))
			Expect(result.Errors[0].Path).Should(Equal([]interface{}{"updateMessage"}))
			Expect(data(result)["updateMessage"]).Should(BeNil())
			Expect(data(result)["createMessage"]).Should(Equal(map[string]interface{}{"content": "y"}))
		})
	})

	Describe("users", func() {
		It("finds a known user", func() {
			result := executeQuery(s, `{ user(id: "a") { id name } }`)
			Expect(result.Errors).Should(BeEmpty())
			Expect(data(result)["user"]).Should(Equal(map[string]interface{}{"id": "a", "name": "alice"}))
		})

		It("returns null without an error for an unknown user", func() {
			result := executeQuery(s, `{ user(id: "z") { id name } }`)
			Expect(result.Errors).Should(BeEmpty())
			Expect(data(result)).Should(HaveKeyWithValue("user", BeNil()))
		})
	})

	Describe("random helpers", func() {
		It("rolls dice within bounds", func() {
			result := executeQuery(s, `{ rollDice(numDice: 5, numSides: 6) }`)
			Expect(result.Errors).Should(BeEmpty())
			rolls := data(result)["rollDice"].([]interface{})
			Expect(rolls).Should(HaveLen(5))
			for _, r := range rolls {
				Expect(r).Should(BeNumerically(">=", 1))
				Expect(r).Should(BeNumerically("<=", 6))
			}
		})

		It("requires numDice", func() {
			result := executeQuery(s, `{ rollDice }`)
			Expect(result.Errors).ShouldNot(BeEmpty())
		})

		It("serves a die object", func() {
			result := executeQuery(s, `{ getDie { numSides rollOnce roll(numRolls: 3) } }`)
			Expect(result.Errors).Should(BeEmpty())
			die := data(result)["getDie"].(map[string]interface{})
			Expect(die["numSides"]).Should(Equal(random.DefaultSides))
			Expect(die["rollOnce"]).Should(BeNumerically("<=", random.DefaultSides))
			Expect(die["roll"]).Should(HaveLen(3))
		})

		It("answers quote, random and ip", func() {
			result := executeQuery(s, `{ quoteOfTheDay random ip }`)
			Expect(result.Errors).Should(BeEmpty())
			d := data(result)
			Expect(random.Quotes).Should(ContainElement(d["quoteOfTheDay"]))
			Expect(d["random"]).Should(BeNumerically("<", 1))
			Expect(d["ip"]).Should(Equal("192.0.2.7"))
		})
	})
})
