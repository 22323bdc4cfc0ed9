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

// Receipt is a cash receipt voucher against a customer's account.
type Receipt struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BusinessId    string          `gorm:"index;not null" json:"business_id" binding:"required"`
	CustomerId    int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	ReceiptNumber string          `gorm:"size:255;not null" json:"receipt_number" binding:"required"`
	ReceiptDate   time.Time       `gorm:"index;not null" json:"receipt_date" binding:"required"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paid_amount" binding:"required"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewReceipt struct {
	CustomerId    int             `json:"customer_id" binding:"required"`
	ReceiptNumber string          `json:"receipt_number" binding:"required"`
	ReceiptDate   time.Time       `json:"receipt_date" binding:"required"`
	PaidAmount    decimal.Decimal `json:"paid_amount" binding:"required"`
	Notes         string          `json:"notes"`
}

func (r Receipt) GetId() int {
	return r.ID
}

func (r Receipt) GetBusinessId() string {
	return r.BusinessId
}

func (r Receipt) GetCursor() string {
	return r.ReceiptDate.Format(time.RFC3339)
}

func (input *NewReceipt) validate(ctx context.Context, businessId string) error {
	if err := utils.ValidateResourceId[Customer](ctx, businessId, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if err := utils.ValidateUnique[Receipt](ctx, businessId, "receipt_number", input.ReceiptNumber, 0); err != nil {
		return err
	}
	if !input.PaidAmount.IsPositive() {
		return errors.New("paid amount must be positive")
	}
	if input.ReceiptDate.IsZero() {
		return errors.New("receipt date is required")
	}
	return nil
}

func CreateReceipt(ctx context.Context, input *NewReceipt) (*Receipt, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}

	var receipt Receipt
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer Customer
		if err := tx.Where("business_id = ?", businessId).
			First(&customer, input.CustomerId).Error; err != nil {
			return utils.ErrorRecordNotFound
		}

		receipt = Receipt{
			BusinessId:    businessId,
			CustomerId:    input.CustomerId,
			ReceiptNumber: input.ReceiptNumber,
			ReceiptDate:   input.ReceiptDate,
			PaidAmount:    input.PaidAmount,
			Notes:         input.Notes,
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}

		newBalance := customer.TotalBalance.Sub(input.PaidAmount)
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
	return &receipt, nil
}

func GetReceipts(ctx context.Context, customerId *int, fromDate, toDate *time.Time) ([]*Receipt, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var results []*Receipt
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if customerId != nil && *customerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}
	if fromDate != nil {
		dbCtx = dbCtx.Where("receipt_date >= ?", fromDate)
	}
	if toDate != nil {
		dbCtx = dbCtx.Where("receipt_date <= ?", toDate)
	}
	if err := dbCtx.Order("receipt_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
