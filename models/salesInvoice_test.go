package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewSalesInvoice_BalanceDelta(t *testing.T) {
	cases := []struct {
		name     string
		input    NewSalesInvoice
		expected string
	}{
		{
			name:     "credit invoice adds unpaid remainder",
			input:    NewSalesInvoice{InvoiceType: InvoiceTypeCredit, TotalAmount: decimal.NewFromInt(200), PaidAmount: decimal.NewFromInt(50)},
			expected: "150",
		},
		{
			name:     "cash invoice settles on the spot",
			input:    NewSalesInvoice{InvoiceType: InvoiceTypeCash, TotalAmount: decimal.NewFromInt(300)},
			expected: "0",
		},
		{
			name:     "payment entry reduces by absolute value",
			input:    NewSalesInvoice{InvoiceType: InvoiceTypePayment, TotalAmount: decimal.NewFromInt(-50)},
			expected: "-50",
		},
		{
			name:     "payment entry with positive total still reduces",
			input:    NewSalesInvoice{InvoiceType: InvoiceTypePayment, TotalAmount: decimal.NewFromInt(50)},
			expected: "-50",
		},
	}
	for _, tc := range cases {
		got := tc.input.BalanceDelta()
		if got.String() != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got.String())
		}
	}
}

func TestInvoiceTypeValidate(t *testing.T) {
	for _, valid := range []InvoiceType{InvoiceTypeCash, InvoiceTypeCredit, InvoiceTypePayment} {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected %q to be valid: %v", valid, err)
		}
	}
	if err := InvoiceType("refund").Validate(); err == nil {
		t.Fatal("expected invalid invoice type to error")
	}
}
