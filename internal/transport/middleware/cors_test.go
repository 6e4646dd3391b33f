package middleware_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sparkserves/subscription-checkout/internal/transport/middleware"
)

var _ = Describe("CORS", func() {
	var (
		handler http.Handler
		called  bool
	)

	BeforeEach(func() {
		called = false
		handler = middleware.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))
	})

	Context("for a preflight request", func() {
		It("answers 204 with permissive headers without reaching the handler", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/checkout", nil)
			req.Header.Set("Origin", "https://app.sparkserves.in")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(called).To(BeFalse())
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
			Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(Equal("GET, POST, OPTIONS"))
			Expect(rec.Header().Get("Access-Control-Allow-Headers")).To(Equal("authorization, x-client-info, apikey, content-type"))
		})
	})

	Context("for an actual request", func() {
		It("passes through with the CORS headers attached", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(called).To(BeTrue())
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})
})
