package postgres_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sparkserves/subscription-checkout/internal/billing"
	billingpg "github.com/sparkserves/subscription-checkout/internal/billing/postgres"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/customer"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/invoice"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/payment"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/subscription"
)

// counterGenerator stands in for the database sequence, which sqlite does
// not support.
type counterGenerator struct {
	next int64
	err  error
}

func (g *counterGenerator) Next(tx *gorm.DB) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.next++
	return fmt.Sprintf("INV-%06d", g.next), nil
}

func newRecords() *billing.Records {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)
	return &billing.Records{
		Customer: &customer.Customer{
			RestaurantName: "Spice Route",
			ProprietorName: "R. Nair",
			Address:        "2 Beach Road, Alleppey",
			Pincode:        "688012",
			PhoneNumber:    "9123456780",
		},
		Subscription: &subscription.Subscription{
			ProductType: "dine-ease",
			Tenure:      "half-yearly",
			Amount:      2499,
			StartDate:   start,
			EndDate:     end,
			NextDueDate: end,
		},
		Invoice: &invoice.Invoice{
			Amount:      2499,
			TaxAmount:   0,
			TotalAmount: 2499,
			PaidAmount:  2499,
			BalanceDue:  0,
			DueDate:     end,
			Status:      invoice.StatusPaid,
		},
		Payment: &payment.Payment{
			Amount:            2499,
			Status:            payment.StatusCompleted,
			PaymentMethod:     payment.MethodRazorpay,
			RazorpayPaymentID: "pay_Db9",
			RazorpayOrderID:   "order_Db9",
		},
	}
}

var _ = Describe("BillingRepository", func() {
	var (
		db        *gorm.DB
		generator *counterGenerator
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(
			&customer.Customer{},
			&subscription.Subscription{},
			&invoice.Invoice{},
			&payment.Payment{},
		)).To(Succeed())
		generator = &counterGenerator{}
	})

	Describe("CreateCheckoutRecords", func() {
		It("writes all four rows and links them together", func() {
			repository := billingpg.NewBillingRepository(db, generator)
			records := newRecords()

			err := repository.CreateCheckoutRecords(context.Background(), records)

			Expect(err).ToNot(HaveOccurred())
			Expect(records.Customer.ID).ToNot(BeZero())
			Expect(records.Subscription.CustomerID).To(Equal(records.Customer.ID))
			Expect(records.Invoice.SubscriptionID).To(Equal(records.Subscription.ID))
			Expect(records.Invoice.CustomerID).To(Equal(records.Customer.ID))
			Expect(records.Invoice.InvoiceNumber).To(Equal("INV-000001"))
			Expect(records.Payment.InvoiceID).ToNot(BeNil())
			Expect(*records.Payment.InvoiceID).To(Equal(records.Invoice.ID))

			var count int64
			Expect(db.Model(&payment.Payment{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("rolls everything back when the invoice number cannot be generated", func() {
			generator.err = fmt.Errorf("sequence unavailable")
			repository := billingpg.NewBillingRepository(db, generator)

			err := repository.CreateCheckoutRecords(context.Background(), newRecords())

			Expect(err).To(HaveOccurred())
			var customers int64
			Expect(db.Model(&customer.Customer{}).Count(&customers).Error).To(Succeed())
			Expect(customers).To(BeZero())
			var subscriptions int64
			Expect(db.Model(&subscription.Subscription{}).Count(&subscriptions).Error).To(Succeed())
			Expect(subscriptions).To(BeZero())
		})

		It("rolls everything back when a duplicate payment id is inserted", func() {
			repository := billingpg.NewBillingRepository(db, generator)
			Expect(repository.CreateCheckoutRecords(context.Background(), newRecords())).To(Succeed())

			err := repository.CreateCheckoutRecords(context.Background(), newRecords())

			Expect(err).To(HaveOccurred())
			var customers int64
			Expect(db.Model(&customer.Customer{}).Count(&customers).Error).To(Succeed())
			Expect(customers).To(Equal(int64(1)))
			var invoices int64
			Expect(db.Model(&invoice.Invoice{}).Count(&invoices).Error).To(Succeed())
			Expect(invoices).To(Equal(int64(1)))
		})
	})
})
