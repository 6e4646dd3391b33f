package verification_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sparkserves/subscription-checkout/internal/verification"
)

func hmacHex(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

var _ = Describe("Verifier", func() {
	const (
		secret    = "rzp_test_secret"
		orderID   = "order_MhZ5aBcDeFgHiJ"
		paymentID = "pay_NkW8xYzAbCdEfG"
	)

	var verifier *verification.Verifier

	BeforeEach(func() {
		verifier = verification.NewVerifier(secret)
	})

	Describe("Verify", func() {
		Context("with a genuine signature", func() {
			It("accepts the confirmation", func() {
				sig := hmacHex(secret, orderID+"|"+paymentID)

				result := verifier.Verify(orderID, paymentID, sig)

				Expect(result.Valid).To(BeTrue())
				Expect(result.OrderID).To(Equal(orderID))
				Expect(result.PaymentID).To(Equal(paymentID))
			})

			It("is deterministic and side-effect free", func() {
				sig := hmacHex(secret, orderID+"|"+paymentID)

				first := verifier.Verify(orderID, paymentID, sig)
				second := verifier.Verify(orderID, paymentID, sig)

				Expect(first).To(Equal(second))
			})
		})

		Context("with tampered inputs", func() {
			It("rejects a single-character mutation of the order id", func() {
				sig := hmacHex(secret, orderID+"|"+paymentID)
				Expect(verifier.Verify(orderID+"X", paymentID, sig).Valid).To(BeFalse())
			})

			It("rejects a single-character mutation of the payment id", func() {
				sig := hmacHex(secret, orderID+"|"+paymentID)
				Expect(verifier.Verify(orderID, "pay_NkW8xYzAbCdEfH", sig).Valid).To(BeFalse())
			})

			It("rejects a single-character mutation of the signature", func() {
				sig := hmacHex(secret, orderID+"|"+paymentID)
				mutated := []byte(sig)
				if mutated[0] == 'a' {
					mutated[0] = 'b'
				} else {
					mutated[0] = 'a'
				}
				Expect(verifier.Verify(orderID, paymentID, string(mutated)).Valid).To(BeFalse())
			})

			It("rejects a signature produced under a different secret", func() {
				sig := hmacHex("wrong_secret", orderID+"|"+paymentID)
				Expect(verifier.Verify(orderID, paymentID, sig).Valid).To(BeFalse())
			})
		})

		Context("with an empty secret", func() {
			It("rejects a signature computed under the empty key", func() {
				// Anyone can compute an HMAC under an empty key; a verifier
				// without a secret must never accept one.
				empty := verification.NewVerifier("")
				forged := hmacHex("", orderID+"|"+paymentID)

				Expect(empty.Verify(orderID, paymentID, forged).Valid).To(BeFalse())
			})

			It("reports itself as not configured", func() {
				Expect(verification.NewVerifier("").Configured()).To(BeFalse())
				Expect(verifier.Configured()).To(BeTrue())
			})
		})

		Context("with missing inputs", func() {
			It("rejects without computing an HMAC", func() {
				sig := hmacHex(secret, orderID+"|"+paymentID)

				Expect(verifier.Verify("", paymentID, sig).Valid).To(BeFalse())
				Expect(verifier.Verify(orderID, "", sig).Valid).To(BeFalse())
				Expect(verifier.Verify(orderID, paymentID, "").Valid).To(BeFalse())
			})
		})
	})

	Describe("Sign", func() {
		It("matches the gateway's hex HMAC-SHA256 over order|payment", func() {
			Expect(verifier.Sign(orderID, paymentID)).To(Equal(hmacHex(secret, orderID+"|"+paymentID)))
		})
	})
})
