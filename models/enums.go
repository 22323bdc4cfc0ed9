package models

import "errors"

// InvoiceType mirrors the values stored by the legacy POS frontend:
// "cash" invoices are settled at the counter, "credit" invoices stay on the
// customer's account, and "payment" invoices are ledger-only entries that
// reduce the account balance (their total is recorded as a negative amount).
type InvoiceType string

const (
	InvoiceTypeCash    InvoiceType = "cash"
	InvoiceTypeCredit  InvoiceType = "credit"
	InvoiceTypePayment InvoiceType = "payment"
)

func (t InvoiceType) Validate() error {
	switch t {
	case InvoiceTypeCash, InvoiceTypeCredit, InvoiceTypePayment:
		return nil
	}
	return errors.New("invalid invoice type")
}

// TransactionKind tags normalized statement rows.
type TransactionKind string

const (
	KindInvoice         TransactionKind = "invoice"
	KindPaymentReceived TransactionKind = "payment-received"
	KindAccountPayment  TransactionKind = "account-payment"
	KindPurchase        TransactionKind = "purchase"
	KindSupplierPayment TransactionKind = "supplier-payment"
)
