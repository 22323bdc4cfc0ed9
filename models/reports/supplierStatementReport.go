package reports

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/daftarly/daftar_backend/models"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
)

// SupplierStatementRow carries two derived balance figures instead of one:
//
//   - OwnAmount: the row's own debit or credit
//   - CumulativeBalance: the running balance after the row
//
// The legacy supplier statement page displays OwnAmount for purchase rows
// and CumulativeBalance for payment rows, so its "balance" column is not a
// single consistent quantity. That display rule lives in DisplayBalance;
// both underlying figures stay available to any consumer.
type SupplierStatementRow struct {
	ID                string                 `json:"id"`
	SourceID          int                    `json:"source_id"`
	Date              time.Time              `json:"date"`
	Kind              models.TransactionKind `json:"kind"`
	Description       string                 `json:"description"`
	Debit             decimal.Decimal        `json:"debit"`
	Credit            decimal.Decimal        `json:"credit"`
	OwnAmount         decimal.Decimal        `json:"own_amount"`
	CumulativeBalance decimal.Decimal        `json:"cumulative_balance"`
}

// DisplayBalance reproduces the legacy per-row balance column.
func (r SupplierStatementRow) DisplayBalance() decimal.Decimal {
	if r.Kind == models.KindPurchase {
		return r.OwnAmount
	}
	return r.CumulativeBalance
}

type SupplierStatement struct {
	Rows        []SupplierStatementRow `json:"rows"`
	TotalDebit  decimal.Decimal        `json:"total_debit"`
	TotalCredit decimal.Decimal        `json:"total_credit"`
	// CurrentBalance = TotalDebit - TotalCredit, reported separately from
	// any row's balance figure.
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// BuildSupplierStatement merges purchases and payments for one supplier into
// a chronological statement. Purchases debit their total price, payments
// credit their amount; rows sharing a date keep concatenation order
// (purchases first, then payments; stable sort).
func BuildSupplierStatement(purchases []models.Purchase, payments []models.SupplierPayment, supplierName string) *SupplierStatement {

	rows := make([]SupplierStatementRow, 0, len(purchases)+len(payments))

	for _, purchase := range purchases {
		if purchase.SupplierName != supplierName {
			continue
		}
		rows = append(rows, SupplierStatementRow{
			ID:          "PU:" + strconv.Itoa(purchase.ID),
			SourceID:    purchase.ID,
			Date:        purchase.PurchaseDate,
			Kind:        models.KindPurchase,
			Debit:       purchase.PurchasePrice,
			Description: "فاتورة مشتريات",
		})
	}

	for _, payment := range payments {
		if payment.SupplierName != supplierName {
			continue
		}
		rows = append(rows, SupplierStatementRow{
			ID:          "SP:" + strconv.Itoa(payment.ID),
			SourceID:    payment.ID,
			Date:        payment.PaymentDate,
			Kind:        models.KindSupplierPayment,
			Credit:      payment.PaymentAmount,
			Description: "دفعة للمورد",
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	statement := SupplierStatement{Rows: rows}
	runningBalance := decimal.Zero
	for i := range rows {
		runningBalance = runningBalance.Add(rows[i].Debit).Sub(rows[i].Credit)
		if rows[i].Kind == models.KindPurchase {
			rows[i].OwnAmount = rows[i].Debit
		} else {
			rows[i].OwnAmount = rows[i].Credit
		}
		rows[i].CumulativeBalance = runningBalance
		statement.TotalDebit = statement.TotalDebit.Add(rows[i].Debit)
		statement.TotalCredit = statement.TotalCredit.Add(rows[i].Credit)
	}
	statement.CurrentBalance = statement.TotalDebit.Sub(statement.TotalCredit)

	return &statement
}

type SupplierStatementResponse struct {
	SupplierName   string            `json:"supplier_name"`
	AccountBalance decimal.Decimal   `json:"account_balance"`
	Statement      SupplierStatement `json:"statement"`
}

func GetSupplierStatementReport(ctx context.Context, supplierName string) (*SupplierStatementResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	supplier, err := models.GetSupplierByName(ctx, supplierName)
	if err != nil {
		return nil, err
	}

	purchases, err := models.GetPurchases(ctx, &supplierName, nil, nil)
	if err != nil {
		return nil, err
	}
	payments, err := models.GetSupplierPayments(ctx, &supplierName, nil, nil)
	if err != nil {
		return nil, err
	}

	statement := BuildSupplierStatement(deref(purchases), deref(payments), supplierName)

	return &SupplierStatementResponse{
		SupplierName:   supplier.Name,
		AccountBalance: supplier.TotalBalance,
		Statement:      *statement,
	}, nil
}
