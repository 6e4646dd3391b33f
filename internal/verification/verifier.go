package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Verifier authenticates payment confirmations against the shared gateway
// secret. It must only be constructed where the secret is legitimately
// available: the server process, never anything client-facing.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Configured reports whether a secret is present. A verifier without one
// can never validate anything and callers should treat it as absent.
func (v *Verifier) Configured() bool {
	return v != nil && len(v.secret) > 0
}

// Result carries the outcome of a verification. Derived, never stored.
type Result struct {
	Valid     bool   `json:"valid"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

// Verify checks that the submitted signature is the hex-encoded HMAC-SHA256
// of "orderID|paymentID" under the shared secret. Missing inputs are a
// structural failure and short-circuit before any HMAC is computed; both
// structural and computed mismatches come back as not valid, and callers
// must not branch differently on the two beyond logging.
//
// An empty secret rejects everything: an HMAC under an empty key is
// computable by anyone, so accepting it would let any caller forge a
// confirmation.
func (v *Verifier) Verify(orderID, paymentID, signature string) Result {
	result := Result{OrderID: orderID, PaymentID: paymentID}

	if len(v.secret) == 0 {
		return result
	}
	if orderID == "" || paymentID == "" || signature == "" {
		return result
	}

	expected := v.Sign(orderID, paymentID)

	// Compare the hex strings in constant time. Length differences leak
	// nothing useful here: the expected digest length is public.
	result.Valid = subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
	return result
}

// Sign produces the signature the gateway would emit for this order and
// payment pair. Exposed for the verifier's own tests and for tooling that
// simulates gateway callbacks in development.
func (v *Verifier) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
