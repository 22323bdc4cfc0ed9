// seed-demo creates a demo business with a handful of customers, suppliers
// and ledger activity so the statement endpoints have something to show.
// Safe to rerun; it skips seeding when the demo business already exists.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/models"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const demoBusinessName = "Daftar Demo Store"

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	var existing models.Business
	err := db.WithContext(ctx).Where("name = ?", demoBusinessName).First(&existing).Error
	if err == nil {
		fmt.Printf("demo business already exists (id=%s), nothing to do\n", existing.ID)
		return
	}
	if err != gorm.ErrRecordNotFound {
		fmt.Fprintf(os.Stderr, "failed to lookup demo business: %v\n", err)
		os.Exit(1)
	}

	business, err := models.CreateBusiness(ctx, &models.NewBusiness{
		Name:        demoBusinessName,
		ContactName: "Demo Owner",
		Email:       "demo@daftarly.example",
		Currency:    "SAR",
		Timezone:    "Asia/Riyadh",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create demo business: %v\n", err)
		os.Exit(1)
	}

	ctx = utils.SetBusinessIdInContext(ctx, business.ID.String())
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "SeedDemo")

	if err := seed(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded demo business id=%s\n", business.ID)

	// A ready-to-use bearer token for curl against the demo tenant.
	token, err := utils.JwtGenerate(1, business.ID.String(), "SeedDemo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate demo token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("demo bearer token: %s\n", token)
}

func seed(ctx context.Context) error {
	day := func(n int) time.Time {
		return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
	}

	customer, err := models.CreateCustomer(ctx, &models.NewCustomer{
		Name:  "أحمد السالم",
		Phone: "0501234567",
	})
	if err != nil {
		return err
	}
	walkIn, err := models.CreateCustomer(ctx, &models.NewCustomer{
		Name: "عميل نقدي",
	})
	if err != nil {
		return err
	}

	// Credit invoice, then a cash sale, then a receipt and an account payment
	// so the statement shows debits, credits and a moving balance.
	invoices := []models.NewSalesInvoice{
		{
			CustomerId:    customer.ID,
			InvoiceNumber: "INV-1001",
			InvoiceDate:   day(3),
			InvoiceType:   models.InvoiceTypeCredit,
			TotalAmount:   decimal.NewFromInt(1500),
			PaidAmount:    decimal.NewFromInt(500),
		},
		{
			CustomerId:    walkIn.ID,
			InvoiceNumber: "INV-1002",
			InvoiceDate:   day(4),
			InvoiceType:   models.InvoiceTypeCash,
			TotalAmount:   decimal.NewFromInt(220),
		},
		{
			CustomerId:    customer.ID,
			InvoiceNumber: "INV-1003",
			InvoiceDate:   day(10),
			InvoiceType:   models.InvoiceTypeCredit,
			TotalAmount:   decimal.NewFromInt(800),
		},
		{
			CustomerId:    customer.ID,
			InvoiceNumber: "PAY-2001",
			InvoiceDate:   day(15),
			InvoiceType:   models.InvoiceTypePayment,
			TotalAmount:   decimal.NewFromInt(-300),
		},
	}
	for i := range invoices {
		if _, err := models.CreateSalesInvoice(ctx, &invoices[i]); err != nil {
			return err
		}
	}

	_, err = models.CreateReceipt(ctx, &models.NewReceipt{
		CustomerId:    customer.ID,
		ReceiptNumber: "RCPT-3001",
		ReceiptDate:   day(20),
		PaidAmount:    decimal.NewFromInt(400),
	})
	if err != nil {
		return err
	}

	supplier, err := models.CreateSupplier(ctx, &models.NewSupplier{
		Name:  "مؤسسة التوريدات الحديثة",
		Phone: "0559876543",
	})
	if err != nil {
		return err
	}

	_, err = models.CreatePurchase(ctx, &models.NewPurchase{
		SupplierName:  supplier.Name,
		PurchaseDate:  day(2),
		PurchasePrice: decimal.NewFromInt(5000),
	})
	if err != nil {
		return err
	}
	_, err = models.CreatePurchase(ctx, &models.NewPurchase{
		SupplierName:  supplier.Name,
		PurchaseDate:  day(12),
		PurchasePrice: decimal.NewFromInt(1250),
	})
	if err != nil {
		return err
	}
	_, err = models.CreateSupplierPayment(ctx, &models.NewSupplierPayment{
		SupplierName:  supplier.Name,
		PaymentDate:   day(18),
		PaymentAmount: decimal.NewFromInt(2000),
	})
	return err
}
