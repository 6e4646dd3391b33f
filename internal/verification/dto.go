package verification

// VerifyRequest is the payment confirmation as the Razorpay checkout widget
// returns it. The field names are part of the gateway protocol and must be
// preserved exactly.
type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Complete reports whether all three confirmation fields are present.
// An incomplete confirmation is rejected before any HMAC work.
func (r *VerifyRequest) Complete() bool {
	return r.RazorpayOrderID != "" && r.RazorpayPaymentID != "" && r.RazorpaySignature != ""
}

type VerifyResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
