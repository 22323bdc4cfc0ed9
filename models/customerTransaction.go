package models

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
)

// CustomerTransaction is a normalized row for the paged per-customer
// transaction listing (invoices and receipts interleaved, newest first).
type CustomerTransaction struct {
	ID             string          `json:"id"`
	SourceType     string          `json:"source_type"` // "Invoice", "Receipt"
	SourceID       int             `json:"source_id"`
	Date           time.Time       `json:"date"`
	DocumentNumber string          `json:"document_number"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Balance        decimal.Decimal `json:"balance"`
}

type CustomerTransactionsResponse struct {
	Transactions []CustomerTransaction `json:"transactions"`
	TotalCount   int64                 `json:"total_count"`
}

func GetCustomerTransactions(ctx context.Context, customerId int, fromDate, toDate *time.Time, docTypes []string, search string, page, limit int) (*CustomerTransactionsResponse, error) {
	db := config.GetDB()
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	var transactions []CustomerTransaction

	// 1. Sales invoices
	if len(docTypes) == 0 || containsFold(docTypes, "Invoice") {
		var invoices []SalesInvoice
		query := db.WithContext(ctx).Where("business_id = ? AND customer_id = ?", businessId, customerId)
		if fromDate != nil {
			query = query.Where("invoice_date >= ?", fromDate)
		}
		if toDate != nil {
			query = query.Where("invoice_date <= ?", toDate)
		}
		if search != "" {
			query = query.Where("invoice_number LIKE ?", "%"+search+"%")
		}
		if err := query.Find(&invoices).Error; err != nil {
			return nil, err
		}

		for _, inv := range invoices {
			transactions = append(transactions, CustomerTransaction{
				ID:             "IV:" + strconv.Itoa(inv.ID),
				SourceType:     "Invoice",
				SourceID:       inv.ID,
				Date:           inv.InvoiceDate,
				DocumentNumber: inv.InvoiceNumber,
				Description:    inv.Notes,
				Amount:         inv.TotalAmount,
				Balance:        inv.CurrentBalance,
			})
		}
	}

	// 2. Receipts
	if len(docTypes) == 0 || containsFold(docTypes, "Receipt") {
		var receipts []Receipt
		query := db.WithContext(ctx).Where("business_id = ? AND customer_id = ?", businessId, customerId)
		if fromDate != nil {
			query = query.Where("receipt_date >= ?", fromDate)
		}
		if toDate != nil {
			query = query.Where("receipt_date <= ?", toDate)
		}
		if search != "" {
			query = query.Where("receipt_number LIKE ?", "%"+search+"%")
		}
		if err := query.Find(&receipts).Error; err != nil {
			return nil, err
		}

		for _, rc := range receipts {
			transactions = append(transactions, CustomerTransaction{
				ID:             "RC:" + strconv.Itoa(rc.ID),
				SourceType:     "Receipt",
				SourceID:       rc.ID,
				Date:           rc.ReceiptDate,
				DocumentNumber: rc.ReceiptNumber,
				Description:    rc.Notes,
				Amount:         rc.PaidAmount,
			})
		}
	}

	// newest first
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	totalCount := int64(len(transactions))
	start := (page - 1) * limit
	if start < 0 {
		start = 0
	}
	end := start + limit
	if end > int(totalCount) {
		end = int(totalCount)
	}

	paginated := []CustomerTransaction{}
	if start < int(totalCount) {
		paginated = transactions[start:end]
	}

	return &CustomerTransactionsResponse{
		Transactions: paginated,
		TotalCount:   totalCount,
	}, nil
}

func containsFold(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
