package reports

import (
	"reflect"
	"testing"
	"time"

	"github.com/daftarly/daftar_backend/models"
	"github.com/shopspring/decimal"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func d(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestBuildCustomerStatement_Empty(t *testing.T) {
	stmt := BuildCustomerStatement(nil, nil, 1)
	if len(stmt.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(stmt.Rows))
	}
	if !stmt.TotalDebit.IsZero() || !stmt.TotalCredit.IsZero() {
		t.Fatalf("expected zero totals, got debit=%s credit=%s", stmt.TotalDebit, stmt.TotalCredit)
	}
}

func TestBuildCustomerStatement_MixedHistory(t *testing.T) {
	sales := []models.SalesInvoice{
		{ID: 1, CustomerId: 7, InvoiceDate: day(1), InvoiceType: models.InvoiceTypeCredit, TotalAmount: d(200), CurrentBalance: d(200)},
	}
	receipts := []models.Receipt{
		{ID: 2, CustomerId: 7, ReceiptDate: day(2), PaidAmount: d(80)},
	}

	stmt := BuildCustomerStatement(sales, receipts, 7)

	if len(stmt.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stmt.Rows))
	}
	cases := []struct {
		debit, credit, balance int64
	}{
		{200, 0, 200},
		{0, 80, 120},
	}
	for i, tc := range cases {
		row := stmt.Rows[i]
		if !row.Debit.Equal(d(tc.debit)) || !row.Credit.Equal(d(tc.credit)) || !row.Balance.Equal(d(tc.balance)) {
			t.Fatalf("row %d: expected debit=%d credit=%d balance=%d, got debit=%s credit=%s balance=%s",
				i, tc.debit, tc.credit, tc.balance, row.Debit, row.Credit, row.Balance)
		}
	}
	if !stmt.TotalDebit.Equal(d(200)) || !stmt.TotalCredit.Equal(d(80)) {
		t.Fatalf("expected totals 200/80, got %s/%s", stmt.TotalDebit, stmt.TotalCredit)
	}
}

func TestBuildCustomerStatement_PaymentInvoice(t *testing.T) {
	sales := []models.SalesInvoice{
		{ID: 3, CustomerId: 1, InvoiceDate: day(1), InvoiceType: models.InvoiceTypePayment, TotalAmount: d(-50)},
	}

	stmt := BuildCustomerStatement(sales, nil, 1)

	if len(stmt.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stmt.Rows))
	}
	row := stmt.Rows[0]
	if !row.Debit.IsZero() || !row.Credit.Equal(d(50)) {
		t.Fatalf("expected debit=0 credit=50, got debit=%s credit=%s", row.Debit, row.Credit)
	}
	if row.Kind != models.KindAccountPayment {
		t.Fatalf("expected kind %q, got %q", models.KindAccountPayment, row.Kind)
	}
	if row.Description != "دفعة نقدية" {
		t.Fatalf("unexpected description %q", row.Description)
	}
	// credit-only history: balance goes negative
	if !row.Balance.Equal(d(-50)) {
		t.Fatalf("expected balance -50, got %s", row.Balance)
	}
}

func TestBuildCustomerStatement_FiltersOtherCustomers(t *testing.T) {
	sales := []models.SalesInvoice{
		{ID: 1, CustomerId: 1, InvoiceDate: day(1), InvoiceType: models.InvoiceTypeCredit, CurrentBalance: d(100)},
		{ID: 2, CustomerId: 2, InvoiceDate: day(1), InvoiceType: models.InvoiceTypeCredit, CurrentBalance: d(999)},
	}
	receipts := []models.Receipt{
		{ID: 3, CustomerId: 2, ReceiptDate: day(2), PaidAmount: d(999)},
	}

	stmt := BuildCustomerStatement(sales, receipts, 1)

	if len(stmt.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stmt.Rows))
	}
	if !stmt.TotalDebit.Equal(d(100)) || !stmt.TotalCredit.IsZero() {
		t.Fatalf("expected totals 100/0, got %s/%s", stmt.TotalDebit, stmt.TotalCredit)
	}
}

func TestBuildCustomerStatement_SortAndBalanceIdentity(t *testing.T) {
	sales := []models.SalesInvoice{
		{ID: 1, CustomerId: 5, InvoiceDate: day(9), InvoiceType: models.InvoiceTypeCredit, TotalAmount: d(300), CurrentBalance: d(300)},
		{ID: 2, CustomerId: 5, InvoiceDate: day(2), InvoiceType: models.InvoiceTypeCredit, TotalAmount: d(150), CurrentBalance: d(150)},
		{ID: 3, CustomerId: 5, InvoiceDate: day(6), InvoiceType: models.InvoiceTypePayment, TotalAmount: d(-70)},
	}
	receipts := []models.Receipt{
		{ID: 4, CustomerId: 5, ReceiptDate: day(4), PaidAmount: d(50)},
		{ID: 5, CustomerId: 5, ReceiptDate: day(12), PaidAmount: d(200)},
	}

	stmt := BuildCustomerStatement(sales, receipts, 5)

	for i := 1; i < len(stmt.Rows); i++ {
		if stmt.Rows[i-1].Date.After(stmt.Rows[i].Date) {
			t.Fatalf("rows out of order at %d: %s after %s", i, stmt.Rows[i-1].Date, stmt.Rows[i].Date)
		}
	}

	last := stmt.Rows[len(stmt.Rows)-1]
	if !last.Balance.Equal(stmt.TotalDebit.Sub(stmt.TotalCredit)) {
		t.Fatalf("balance identity violated: last=%s totals=%s", last.Balance, stmt.TotalDebit.Sub(stmt.TotalCredit))
	}
}

func TestBuildCustomerStatement_Idempotent(t *testing.T) {
	sales := []models.SalesInvoice{
		{ID: 1, CustomerId: 3, InvoiceDate: day(1), InvoiceType: models.InvoiceTypeCredit, TotalAmount: d(120), CurrentBalance: d(120)},
	}
	receipts := []models.Receipt{
		{ID: 2, CustomerId: 3, ReceiptDate: day(3), PaidAmount: d(20)},
	}

	first := BuildCustomerStatement(sales, receipts, 3)
	second := BuildCustomerStatement(sales, receipts, 3)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical statements, got %+v vs %+v", first, second)
	}
}

func TestBuildCustomerStatement_SameDateKeepsInvoiceFirst(t *testing.T) {
	// ties keep concatenation order: the invoice block precedes receipts
	sales := []models.SalesInvoice{
		{ID: 1, CustomerId: 1, InvoiceDate: day(5), InvoiceType: models.InvoiceTypeCredit, TotalAmount: d(100), CurrentBalance: d(100)},
	}
	receipts := []models.Receipt{
		{ID: 2, CustomerId: 1, ReceiptDate: day(5), PaidAmount: d(100)},
	}

	stmt := BuildCustomerStatement(sales, receipts, 1)

	if stmt.Rows[0].Kind != models.KindInvoice || stmt.Rows[1].Kind != models.KindPaymentReceived {
		t.Fatalf("expected invoice row before receipt row, got %q then %q", stmt.Rows[0].Kind, stmt.Rows[1].Kind)
	}
	if !stmt.Rows[1].Balance.IsZero() {
		t.Fatalf("expected settled balance 0, got %s", stmt.Rows[1].Balance)
	}
}
