package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/models"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recomputes customer and supplier balances from the raw transaction rows and
// compares them against the denormalized columns (customers.total_balance,
// suppliers.total_balance, sales_invoices.current_balance). Dry-run by
// default; -apply rewrites the divergent columns.
func main() {
	businessID := flag.String("business-id", "", "Optional: audit only one business (uuid string). If empty, audits all businesses.")
	apply := flag.Bool("apply", false, "Rewrite divergent balance columns. Default is report-only.")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	config.ConnectRedisWithRetry()

	ctx = context.WithValue(ctx, utils.ContextKeyUserId, 0)
	ctx = context.WithValue(ctx, utils.ContextKeyUserName, "RebuildBalances")

	var businesses []models.Business
	bizQuery := db.WithContext(ctx).Model(&models.Business{})
	if strings.TrimSpace(*businessID) != "" {
		bizQuery = bizQuery.Where("id = ?", strings.TrimSpace(*businessID))
	}
	if err := bizQuery.Find(&businesses).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to list businesses: %v\n", err)
		os.Exit(1)
	}
	if len(businesses) == 0 {
		fmt.Fprintln(os.Stderr, "no businesses found to audit")
		return
	}

	locker := config.GetRedisLock()
	for _, b := range businesses {
		bid := b.ID.String()

		// One rebuild per business at a time; invoice writes also touch
		// these columns.
		var lock *redislock.Lock
		if locker != nil {
			var err error
			lock, err = locker.Obtain(ctx, "rebuild-balances:"+bid, 10*time.Minute, nil)
			if err == redislock.ErrNotObtained {
				fmt.Fprintf(os.Stderr, "business %s: rebuild already running, skipping\n", bid)
				continue
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "business %s: lock error: %v\n", bid, err)
				continue
			}
		}

		fmt.Printf("Auditing business=%s apply=%v\n", bid, *apply)
		if err := auditBusiness(ctx, db, bid, *apply); err != nil {
			fmt.Fprintf(os.Stderr, "business %s audit failed: %v\n", bid, err)
		}

		if lock != nil {
			_ = lock.Release(ctx)
		}
	}

	fmt.Println("Audit complete")
}

func auditBusiness(ctx context.Context, db *gorm.DB, businessId string, apply bool) error {
	if err := auditCustomers(ctx, db, businessId, apply); err != nil {
		return err
	}
	return auditSuppliers(ctx, db, businessId, apply)
}

func auditCustomers(ctx context.Context, db *gorm.DB, businessId string, apply bool) error {
	var customers []models.Customer
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).Find(&customers).Error; err != nil {
		return err
	}

	for _, customer := range customers {
		var invoices []models.SalesInvoice
		err := db.WithContext(ctx).
			Where("business_id = ? AND customer_id = ?", businessId, customer.ID).
			Order("invoice_date, id").
			Find(&invoices).Error
		if err != nil {
			return err
		}
		var receipts []models.Receipt
		err = db.WithContext(ctx).
			Where("business_id = ? AND customer_id = ?", businessId, customer.ID).
			Order("receipt_date, id").
			Find(&receipts).Error
		if err != nil {
			return err
		}

		// Replay invoices and receipts in chronological order; each
		// invoice's stored running balance is the account balance right
		// after that invoice, so earlier receipts are part of it. Same-day
		// events replay invoices first.
		running := customer.OpeningBalance
		ri := 0
		for _, invoice := range invoices {
			for ri < len(receipts) && receipts[ri].ReceiptDate.Before(invoice.InvoiceDate) {
				running = running.Sub(receipts[ri].PaidAmount)
				ri++
			}
			running = running.Add(invoiceDelta(invoice))
			if !running.Equal(invoice.CurrentBalance) {
				fmt.Printf("  customer=%d invoice=%d (%s) current_balance stored=%s recomputed=%s\n",
					customer.ID, invoice.ID, invoice.InvoiceNumber,
					invoice.CurrentBalance.String(), running.String())
				if apply {
					err := db.WithContext(ctx).Model(&models.SalesInvoice{}).
						Where("id = ?", invoice.ID).
						UpdateColumn("current_balance", running).Error
					if err != nil {
						return err
					}
				}
			}
		}
		for ; ri < len(receipts); ri++ {
			running = running.Sub(receipts[ri].PaidAmount)
		}
		expected := running
		if !expected.Equal(customer.TotalBalance) {
			fmt.Printf("  customer=%d (%s) total_balance stored=%s recomputed=%s\n",
				customer.ID, customer.Name, customer.TotalBalance.String(), expected.String())
			if apply {
				err := db.WithContext(ctx).Model(&models.Customer{}).
					Where("id = ?", customer.ID).
					UpdateColumn("total_balance", expected).Error
				if err != nil {
					return err
				}
				if err := utils.RemoveRedis[models.Customer](customer.ID, businessId); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func auditSuppliers(ctx context.Context, db *gorm.DB, businessId string, apply bool) error {
	var suppliers []models.Supplier
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).Find(&suppliers).Error; err != nil {
		return err
	}

	for _, supplier := range suppliers {
		var purchaseTotal decimal.NullDecimal
		err := db.WithContext(ctx).Model(&models.Purchase{}).
			Where("business_id = ? AND supplier_name = ?", businessId, supplier.Name).
			Select("SUM(purchase_price)").
			Scan(&purchaseTotal).Error
		if err != nil {
			return err
		}
		var paymentTotal decimal.NullDecimal
		err = db.WithContext(ctx).Model(&models.SupplierPayment{}).
			Where("business_id = ? AND supplier_name = ?", businessId, supplier.Name).
			Select("SUM(payment_amount)").
			Scan(&paymentTotal).Error
		if err != nil {
			return err
		}

		expected := supplier.OpeningBalance.
			Add(paymentTotal.Decimal.Neg()).
			Add(purchaseTotal.Decimal)
		if !expected.Equal(supplier.TotalBalance) {
			fmt.Printf("  supplier=%d (%s) total_balance stored=%s recomputed=%s\n",
				supplier.ID, supplier.Name, supplier.TotalBalance.String(), expected.String())
			if apply {
				err := db.WithContext(ctx).Model(&models.Supplier{}).
					Where("id = ?", supplier.ID).
					UpdateColumn("total_balance", expected).Error
				if err != nil {
					return err
				}
				if err := utils.RemoveRedis[models.Supplier](supplier.ID, businessId); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func invoiceDelta(invoice models.SalesInvoice) decimal.Decimal {
	switch invoice.InvoiceType {
	case models.InvoiceTypePayment:
		return invoice.TotalAmount.Abs().Neg()
	case models.InvoiceTypeCash:
		return decimal.Zero
	default:
		return invoice.TotalAmount.Sub(invoice.PaidAmount)
	}
}
