package models

import (
	"context"
	"errors"
	"time"

	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesInvoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BusinessId    string          `gorm:"index;not null" json:"business_id" binding:"required"`
	CustomerId    int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	InvoiceNumber string          `gorm:"size:255;not null" json:"invoice_number" binding:"required"`
	InvoiceDate   time.Time       `gorm:"index;not null" json:"invoice_date" binding:"required"`
	InvoiceType   InvoiceType     `gorm:"type:enum('cash','credit','payment');not null" json:"invoice_type" binding:"required"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paid_amount"`
	// CurrentBalance is the customer's running balance captured when the
	// invoice was written. The customer statement report trusts this value
	// as the row's debit instead of recomputing it; cmd/rebuild-balances
	// recomputes from first principles and flags divergence.
	CurrentBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_balance"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSalesInvoice struct {
	CustomerId    int             `json:"customer_id" binding:"required"`
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	InvoiceDate   time.Time       `json:"invoice_date" binding:"required"`
	InvoiceType   InvoiceType     `json:"invoice_type" binding:"required"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Notes         string          `json:"notes"`
}

type SalesInvoicesEdge Edge[SalesInvoice]
type SalesInvoicesConnection struct {
	PageInfo *PageInfo            `json:"pageInfo"`
	Edges    []*SalesInvoicesEdge `json:"edges"`
}

func (si SalesInvoice) GetId() int {
	return si.ID
}

func (si SalesInvoice) GetBusinessId() string {
	return si.BusinessId
}

func (si SalesInvoice) GetCursor() string {
	return si.InvoiceDate.Format(time.RFC3339)
}

func (input *NewSalesInvoice) validate(ctx context.Context, businessId string) error {
	if err := input.InvoiceType.Validate(); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Customer](ctx, businessId, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if err := utils.ValidateUnique[SalesInvoice](ctx, businessId, "invoice_number", input.InvoiceNumber, 0); err != nil {
		return err
	}
	if input.InvoiceType != InvoiceTypePayment && input.TotalAmount.IsNegative() {
		return errors.New("total amount must not be negative")
	}
	if input.PaidAmount.IsNegative() {
		return errors.New("paid amount must not be negative")
	}
	if input.InvoiceDate.IsZero() {
		return errors.New("invoice date is required")
	}
	return nil
}

// BalanceDelta is how the invoice moves the customer's owed balance:
// payment entries reduce it by their absolute value, cash invoices are
// settled on the spot, credit invoices add their unpaid remainder.
func (input *NewSalesInvoice) BalanceDelta() decimal.Decimal {
	switch input.InvoiceType {
	case InvoiceTypePayment:
		return input.TotalAmount.Abs().Neg()
	case InvoiceTypeCash:
		return decimal.Zero
	default:
		return input.TotalAmount.Sub(input.PaidAmount)
	}
}

func CreateSalesInvoice(ctx context.Context, input *NewSalesInvoice) (*SalesInvoice, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}

	paidAmount := input.PaidAmount
	if input.InvoiceType == InvoiceTypeCash {
		paidAmount = input.TotalAmount
	}

	var invoice SalesInvoice
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer Customer
		if err := tx.Where("business_id = ?", businessId).
			First(&customer, input.CustomerId).Error; err != nil {
			return utils.ErrorRecordNotFound
		}

		newBalance := customer.TotalBalance.Add(input.BalanceDelta())

		invoice = SalesInvoice{
			BusinessId:     businessId,
			CustomerId:     input.CustomerId,
			InvoiceNumber:  input.InvoiceNumber,
			InvoiceDate:    input.InvoiceDate,
			InvoiceType:    input.InvoiceType,
			TotalAmount:    input.TotalAmount,
			PaidAmount:     paidAmount,
			CurrentBalance: newBalance,
			Notes:          input.Notes,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		return tx.Model(&Customer{}).
			Where("business_id = ? AND id = ?", businessId, customer.ID).
			UpdateColumn("total_balance", newBalance).Error
	})
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedis[Customer](input.CustomerId, businessId); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func GetSalesInvoice(ctx context.Context, id int) (*SalesInvoice, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[SalesInvoice](ctx, businessId, id)
}

func GetSalesInvoices(ctx context.Context, customerId *int, fromDate, toDate *time.Time) ([]*SalesInvoice, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var results []*SalesInvoice
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if customerId != nil && *customerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}
	if fromDate != nil {
		dbCtx = dbCtx.Where("invoice_date >= ?", fromDate)
	}
	if toDate != nil {
		dbCtx = dbCtx.Where("invoice_date <= ?", toDate)
	}
	if err := dbCtx.Order("invoice_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateSalesInvoice(ctx context.Context, limit *int, after *string, customerId *int) (*SalesInvoicesConnection, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if customerId != nil && *customerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}
	edges, pageInfo, err := FetchPageCompositeCursor[SalesInvoice](dbCtx, utils.DereferencePtr(limit, config.SearchLimit), after, "invoice_date", "<")
	if err != nil {
		return nil, err
	}
	var connection SalesInvoicesConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		invoiceEdge := SalesInvoicesEdge(edge)
		connection.Edges = append(connection.Edges, &invoiceEdge)
	}
	return &connection, nil
}
