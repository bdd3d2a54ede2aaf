package server_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metrics endpoint", func() {
	It("is absent when no metrics address is configured", func() {
		Expect(newServer(nil, nil).MetricsHandler()).Should(BeNil())
	})

	It("exposes HTTP and resolver series together", func() {
		s := instrumentedServer()
		Expect(s.MetricsHandler()).ShouldNot(BeNil())

		rec, _ := serve(s.Handler(), post(`mutation { createMessage(input: {content: "hi"}) { id } }`))
		Expect(rec.Code).Should(Equal(http.StatusOK))

		rec = httptest.NewRecorder()
		s.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).Should(Equal(http.StatusOK))

		exposition := rec.Body.String()
		Expect(exposition).Should(ContainSubstring("gin_request_total"))
		Expect(exposition).Should(ContainSubstring(`graphql_resolver_operations_total{operation="createMessage",outcome="ok"} 1`))
		Expect(exposition).Should(ContainSubstring("graphql_stored_messages 1"))
	})
})
