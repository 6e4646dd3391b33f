package pricing_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sparkserves/subscription-checkout/internal/pricing"
)

var _ = Describe("Calculator", func() {
	Describe("QuoteFor", func() {
		It("applies the 50% discount with zero GST for the reference plan", func() {
			// Given
			plan, err := pricing.LookupPlan(pricing.ProductDineFlow, pricing.TenureQuarterly)
			Expect(err).ToNot(HaveOccurred())

			// When
			quote := pricing.QuoteFor(plan)

			// Then
			Expect(quote.BasePrice).To(Equal(int64(3499)))
			Expect(quote.DiscountAmount).To(Equal(int64(1750)))
			Expect(quote.Subtotal).To(Equal(int64(1749)))
			Expect(quote.GSTAmount).To(Equal(int64(0)))
			Expect(quote.Total).To(Equal(int64(1749)))
		})

		It("holds discount = round(base * 0.5) and total = base - discount across the whole catalog", func() {
			for _, product := range pricing.Products() {
				for _, tenure := range pricing.Tenures() {
					plan, err := pricing.LookupPlan(product.ID, tenure.ID)
					Expect(err).ToNot(HaveOccurred())

					quote := pricing.QuoteFor(plan)

					expectedDiscount := int64(math.Round(float64(plan.BasePrice) * 0.5))
					Expect(quote.DiscountAmount).To(Equal(expectedDiscount), "product %s tenure %s", product.ID, tenure.ID)
					Expect(quote.Total).To(Equal(plan.BasePrice-expectedDiscount), "product %s tenure %s", product.ID, tenure.ID)
					Expect(quote.GSTAmount).To(Equal(int64(0)))
					Expect(quote.Subtotal).To(Equal(quote.Total))
				}
			}
		})

		It("is deterministic", func() {
			plan, err := pricing.LookupPlan(pricing.ProductStoreAssist, pricing.TenureYearly)
			Expect(err).ToNot(HaveOccurred())

			Expect(pricing.QuoteFor(plan)).To(Equal(pricing.QuoteFor(plan)))
		})
	})

	Describe("ChargeNow", func() {
		Context("with full payment", func() {
			It("charges the whole total", func() {
				Expect(pricing.ChargeNow(1749, pricing.PaymentOptionFull)).To(Equal(int64(1749)))
			})
		})

		Context("with partial payment", func() {
			It("charges half rounded half-up on an odd total", func() {
				// 3499 * 0.5 = 1749.5 rounds up to 1750
				charge := pricing.ChargeNow(3499, pricing.PaymentOptionPartial)
				Expect(charge).To(Equal(int64(1750)))
				Expect(pricing.RemainingAfter(3499, charge)).To(Equal(int64(1749)))
			})

			It("splits an even total exactly in half", func() {
				charge := pricing.ChargeNow(2000, pricing.PaymentOptionPartial)
				Expect(charge).To(Equal(int64(1000)))
				Expect(pricing.RemainingAfter(2000, charge)).To(Equal(int64(1000)))
			})

			It("keeps charge + remaining == total for every catalog plan", func() {
				for _, product := range pricing.Products() {
					for _, tenure := range pricing.Tenures() {
						plan, err := pricing.LookupPlan(product.ID, tenure.ID)
						Expect(err).ToNot(HaveOccurred())

						total := pricing.QuoteFor(plan).Total
						charge := pricing.ChargeNow(total, pricing.PaymentOptionPartial)
						remaining := pricing.RemainingAfter(total, charge)

						Expect(charge + remaining).To(Equal(total))
						Expect(remaining).To(BeNumerically(">=", 0))
					}
				}
			})
		})
	})
})

var _ = Describe("Catalog", func() {
	Describe("LookupPlan", func() {
		It("rejects an unknown product", func() {
			_, err := pricing.LookupPlan("pos-max", pricing.TenureQuarterly)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown product"))
		})

		It("rejects an unknown tenure", func() {
			_, err := pricing.LookupPlan(pricing.ProductDineFlow, "weekly")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown tenure"))
		})

		It("resolves every advertised product and tenure", func() {
			Expect(pricing.Products()).To(HaveLen(3))
			Expect(pricing.Tenures()).To(HaveLen(3))

			plan, err := pricing.LookupPlan(pricing.ProductDineEase, pricing.TenureHalfYearly)
			Expect(err).ToNot(HaveOccurred())
			Expect(plan.BasePrice).To(Equal(int64(2499)))
			Expect(plan.Tenure.Months).To(Equal(6))
		})
	})
})
