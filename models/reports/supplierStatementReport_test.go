package reports

import (
	"testing"

	"github.com/daftarly/daftar_backend/models"
)

func TestBuildSupplierStatement_Empty(t *testing.T) {
	stmt := BuildSupplierStatement(nil, nil, "any")
	if len(stmt.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(stmt.Rows))
	}
	if !stmt.TotalDebit.IsZero() || !stmt.TotalCredit.IsZero() || !stmt.CurrentBalance.IsZero() {
		t.Fatalf("expected zero totals, got debit=%s credit=%s balance=%s",
			stmt.TotalDebit, stmt.TotalCredit, stmt.CurrentBalance)
	}
}

func TestBuildSupplierStatement_RowBalanceAsymmetry(t *testing.T) {
	purchases := []models.Purchase{
		{ID: 1, SupplierName: "alfarsi", PurchaseDate: day(1), PurchasePrice: d(100)},
	}
	payments := []models.SupplierPayment{
		{ID: 2, SupplierName: "alfarsi", PaymentDate: day(3), PaymentAmount: d(40)},
	}

	stmt := BuildSupplierStatement(purchases, payments, "alfarsi")

	if len(stmt.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stmt.Rows))
	}

	purchase := stmt.Rows[0]
	if purchase.Kind != models.KindPurchase {
		t.Fatalf("expected purchase row first, got %q", purchase.Kind)
	}
	// the purchase row displays its own amount, not the running balance
	if !purchase.DisplayBalance().Equal(d(100)) {
		t.Fatalf("expected purchase display balance 100, got %s", purchase.DisplayBalance())
	}
	if !purchase.OwnAmount.Equal(d(100)) || !purchase.CumulativeBalance.Equal(d(100)) {
		t.Fatalf("expected own=100 cumulative=100, got own=%s cumulative=%s",
			purchase.OwnAmount, purchase.CumulativeBalance)
	}

	payment := stmt.Rows[1]
	// the payment row displays the running balance after the credit
	if !payment.DisplayBalance().Equal(d(60)) {
		t.Fatalf("expected payment display balance 60, got %s", payment.DisplayBalance())
	}
	if !payment.OwnAmount.Equal(d(40)) || !payment.CumulativeBalance.Equal(d(60)) {
		t.Fatalf("expected own=40 cumulative=60, got own=%s cumulative=%s",
			payment.OwnAmount, payment.CumulativeBalance)
	}

	if !stmt.TotalDebit.Equal(d(100)) || !stmt.TotalCredit.Equal(d(40)) {
		t.Fatalf("expected totals 100/40, got %s/%s", stmt.TotalDebit, stmt.TotalCredit)
	}
	if !stmt.CurrentBalance.Equal(d(60)) {
		t.Fatalf("expected current balance 60, got %s", stmt.CurrentBalance)
	}
}

func TestBuildSupplierStatement_FiltersByName(t *testing.T) {
	purchases := []models.Purchase{
		{ID: 1, SupplierName: "alfarsi", PurchaseDate: day(1), PurchasePrice: d(100)},
		{ID: 2, SupplierName: "najjar", PurchaseDate: day(1), PurchasePrice: d(500)},
	}
	payments := []models.SupplierPayment{
		{ID: 3, SupplierName: "najjar", PaymentDate: day(2), PaymentAmount: d(500)},
	}

	stmt := BuildSupplierStatement(purchases, payments, "alfarsi")

	if len(stmt.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stmt.Rows))
	}
	if !stmt.CurrentBalance.Equal(d(100)) {
		t.Fatalf("expected current balance 100, got %s", stmt.CurrentBalance)
	}
}

func TestBuildSupplierStatement_SortAndTieBreak(t *testing.T) {
	purchases := []models.Purchase{
		{ID: 1, SupplierName: "s", PurchaseDate: day(8), PurchasePrice: d(30)},
		{ID: 2, SupplierName: "s", PurchaseDate: day(2), PurchasePrice: d(50)},
	}
	payments := []models.SupplierPayment{
		// same date as the second purchase: purchase block sorts first
		{ID: 3, SupplierName: "s", PaymentDate: day(8), PaymentAmount: d(20)},
	}

	stmt := BuildSupplierStatement(purchases, payments, "s")

	for i := 1; i < len(stmt.Rows); i++ {
		if stmt.Rows[i-1].Date.After(stmt.Rows[i].Date) {
			t.Fatalf("rows out of order at %d", i)
		}
	}
	if stmt.Rows[1].Kind != models.KindPurchase || stmt.Rows[2].Kind != models.KindSupplierPayment {
		t.Fatalf("expected purchase before payment on equal dates, got %q then %q",
			stmt.Rows[1].Kind, stmt.Rows[2].Kind)
	}
	if !stmt.Rows[2].CumulativeBalance.Equal(d(60)) {
		t.Fatalf("expected cumulative 60 after payment, got %s", stmt.Rows[2].CumulativeBalance)
	}
}
