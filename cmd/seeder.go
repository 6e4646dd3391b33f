package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/sparkserves/subscription-checkout/internal/billing"
	billingpg "github.com/sparkserves/subscription-checkout/internal/billing/postgres"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/customer"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/invoice"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/payment"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/subscription"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample checkout records for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			// Children first, the payments table references invoices
			for _, table := range []string{"payments", "invoices", "subscriptions", "customers"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing checkout data")
		}

		repository := billingpg.NewBillingRepository(gormDB, billingpg.SequenceInvoiceNumberGenerator{})
		start := time.Now()

		samples := []*billing.Records{
			{
				Customer: &customer.Customer{
					RestaurantName: "Annapurna Bhavan",
					ProprietorName: "S. Iyer",
					Address:        "14 MG Road, Kochi",
					Pincode:        "682016",
					PhoneNumber:    "9876543210",
				},
				Subscription: &subscription.Subscription{
					ProductType: "dine-flow",
					Tenure:      "yearly",
					Amount:      4000,
					StartDate:   start,
					EndDate:     start.AddDate(0, 12, 0),
					NextDueDate: start.AddDate(0, 12, 0),
				},
				Invoice: &invoice.Invoice{
					Amount:      4000,
					TotalAmount: 4000,
					PaidAmount:  4000,
					DueDate:     start.AddDate(0, 12, 0),
					Status:      invoice.StatusPaid,
				},
				Payment: &payment.Payment{
					Amount:            4000,
					Status:            payment.StatusCompleted,
					PaymentMethod:     payment.MethodRazorpay,
					RazorpayPaymentID: "pay_seed_full",
					RazorpayOrderID:   "order_seed_full",
				},
			},
			{
				Customer: &customer.Customer{
					RestaurantName: "Spice Route",
					ProprietorName: "R. Nair",
					Address:        "2 Beach Road, Alleppey",
					Pincode:        "688012",
					PhoneNumber:    "9123456780",
				},
				Subscription: &subscription.Subscription{
					ProductType: "store-assist",
					Tenure:      "quarterly",
					Amount:      1249,
					StartDate:   start,
					EndDate:     start.AddDate(0, 3, 0),
					NextDueDate: start.AddDate(0, 3, 0),
				},
				Invoice: &invoice.Invoice{
					Amount:      1249,
					TotalAmount: 1249,
					PaidAmount:  625,
					BalanceDue:  624,
					DueDate:     start.AddDate(0, 3, 0),
					Status:      invoice.StatusPartial,
				},
				Payment: &payment.Payment{
					Amount:            625,
					Status:            payment.StatusCompleted,
					PaymentMethod:     payment.MethodRazorpay,
					RazorpayPaymentID: "pay_seed_partial",
					RazorpayOrderID:   "order_seed_partial",
					IsPartial:         true,
				},
			},
		}

		for _, records := range samples {
			var exists int
			row := gormDB.Raw("SELECT 1 FROM payments WHERE razorpay_payment_id = ?", records.Payment.RazorpayPaymentID).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("sample checkout %s already seeded\n", records.Payment.RazorpayPaymentID)
				continue
			}

			if err := repository.CreateCheckoutRecords(context.Background(), records); err != nil {
				log.Fatalf("failed to seed checkout for %s: %v", records.Customer.RestaurantName, err)
			}
			fmt.Printf("Seeded checkout: %s (%s)\n", records.Customer.RestaurantName, records.Invoice.InvoiceNumber)
		}

		fmt.Println("Sample checkout data seeded successfully")
	},
}
