package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/daftarly/daftar_backend/models"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
)

// CustomerStatementRow is one normalized line of a customer's account
// statement. Exactly one of Debit/Credit is non-zero. Balance is the
// cumulative running balance after this row; it is unclamped and goes
// negative when the account is in credit.
type CustomerStatementRow struct {
	ID          string                 `json:"id"`
	SourceID    int                    `json:"source_id"`
	Date        time.Time              `json:"date"`
	Kind        models.TransactionKind `json:"kind"`
	Description string                 `json:"description"`
	Debit       decimal.Decimal        `json:"debit"`
	Credit      decimal.Decimal        `json:"credit"`
	Balance     decimal.Decimal        `json:"balance"`
}

type CustomerStatement struct {
	Rows        []CustomerStatementRow `json:"rows"`
	TotalDebit  decimal.Decimal        `json:"total_debit"`
	TotalCredit decimal.Decimal        `json:"total_credit"`
}

// BuildCustomerStatement merges a customer's invoices and receipts into a
// chronological statement with a running balance.
//
// Row mapping follows the legacy report pages exactly:
//   - a "payment" invoice credits its absolute total
//   - any other invoice debits its stored current_balance, the running
//     balance captured at write time. The value is trusted as-is; no
//     recomputation happens here (cmd/rebuild-balances audits it).
//   - a receipt credits its paid amount
//
// Rows sharing a date keep concatenation order: invoices first, then
// receipts, each block in input order (stable sort).
func BuildCustomerStatement(sales []models.SalesInvoice, receipts []models.Receipt, customerId int) *CustomerStatement {

	rows := make([]CustomerStatementRow, 0, len(sales)+len(receipts))

	for _, sale := range sales {
		if sale.CustomerId != customerId {
			continue
		}
		row := CustomerStatementRow{
			ID:       "IV:" + strconv.Itoa(sale.ID),
			SourceID: sale.ID,
			Date:     sale.InvoiceDate,
		}
		if sale.InvoiceType == models.InvoiceTypePayment {
			row.Kind = models.KindAccountPayment
			row.Credit = sale.TotalAmount.Abs()
			row.Description = "دفعة نقدية"
		} else {
			row.Kind = models.KindInvoice
			row.Debit = sale.CurrentBalance
			row.Description = fmt.Sprintf("فاتورة مبيعات رقم %s بقيمة %s", sale.InvoiceNumber, sale.TotalAmount.String())
		}
		rows = append(rows, row)
	}

	for _, receipt := range receipts {
		if receipt.CustomerId != customerId {
			continue
		}
		rows = append(rows, CustomerStatementRow{
			ID:          "RC:" + strconv.Itoa(receipt.ID),
			SourceID:    receipt.ID,
			Date:        receipt.ReceiptDate,
			Kind:        models.KindPaymentReceived,
			Credit:      receipt.PaidAmount,
			Description: "إيصال استلام نقدي",
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	statement := CustomerStatement{Rows: rows}
	runningBalance := decimal.Zero
	for i := range rows {
		runningBalance = runningBalance.Add(rows[i].Debit).Sub(rows[i].Credit)
		rows[i].Balance = runningBalance
		statement.TotalDebit = statement.TotalDebit.Add(rows[i].Debit)
		statement.TotalCredit = statement.TotalCredit.Add(rows[i].Credit)
	}

	return &statement
}

// CustomerStatementResponse wraps the computed statement with the customer's
// stored account balance. The two are expected to agree (last row balance ==
// total_balance); the report only surfaces both, it does not reconcile them.
type CustomerStatementResponse struct {
	CustomerId     int               `json:"customer_id"`
	CustomerName   string            `json:"customer_name"`
	AccountBalance decimal.Decimal   `json:"account_balance"`
	Statement      CustomerStatement `json:"statement"`
}

func GetCustomerStatementReport(ctx context.Context, customerId int) (*CustomerStatementResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	customer, err := models.GetCustomer(ctx, customerId)
	if err != nil {
		return nil, err
	}

	sales, err := models.GetSalesInvoices(ctx, &customerId, nil, nil)
	if err != nil {
		return nil, err
	}
	receipts, err := models.GetReceipts(ctx, &customerId, nil, nil)
	if err != nil {
		return nil, err
	}

	statement := BuildCustomerStatement(deref(sales), deref(receipts), customerId)

	return &CustomerStatementResponse{
		CustomerId:     customer.ID,
		CustomerName:   customer.Name,
		AccountBalance: customer.TotalBalance,
		Statement:      *statement,
	}, nil
}

func deref[T any](ptrs []*T) []T {
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
