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

type SupplierPayment struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BusinessId    string          `gorm:"index;not null" json:"business_id" binding:"required"`
	SupplierName  string          `gorm:"index;size:100;not null" json:"supplier_name" binding:"required"`
	PaymentDate   time.Time       `gorm:"index;not null" json:"payment_date" binding:"required"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"payment_amount" binding:"required"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSupplierPayment struct {
	SupplierName  string          `json:"supplier_name" binding:"required"`
	PaymentDate   time.Time       `json:"payment_date" binding:"required"`
	PaymentAmount decimal.Decimal `json:"payment_amount" binding:"required"`
	Notes         string          `json:"notes"`
}

func (sp SupplierPayment) GetId() int {
	return sp.ID
}

func (sp SupplierPayment) GetBusinessId() string {
	return sp.BusinessId
}

func (sp SupplierPayment) GetCursor() string {
	return sp.PaymentDate.Format(time.RFC3339)
}

func (input *NewSupplierPayment) validate(ctx context.Context, businessId string) error {
	if err := utils.ValidateResourceBy[Supplier](ctx, businessId, "name", input.SupplierName); err != nil {
		return errors.New("supplier not found")
	}
	if !input.PaymentAmount.IsPositive() {
		return errors.New("payment amount must be positive")
	}
	if input.PaymentDate.IsZero() {
		return errors.New("payment date is required")
	}
	return nil
}

func CreateSupplierPayment(ctx context.Context, input *NewSupplierPayment) (*SupplierPayment, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}

	var payment SupplierPayment
	var supplier Supplier
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ? AND name = ?", businessId, input.SupplierName).
			First(&supplier).Error; err != nil {
			return utils.ErrorRecordNotFound
		}

		payment = SupplierPayment{
			BusinessId:    businessId,
			SupplierName:  input.SupplierName,
			PaymentDate:   input.PaymentDate,
			PaymentAmount: input.PaymentAmount,
			Notes:         input.Notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		newBalance := supplier.TotalBalance.Sub(input.PaymentAmount)
		return tx.Model(&Supplier{}).
			Where("business_id = ? AND id = ?", businessId, supplier.ID).
			UpdateColumn("total_balance", newBalance).Error
	})
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedis[Supplier](supplier.ID, businessId); err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetSupplierPayments(ctx context.Context, supplierName *string, fromDate, toDate *time.Time) ([]*SupplierPayment, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var results []*SupplierPayment
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if supplierName != nil && len(*supplierName) > 0 {
		dbCtx = dbCtx.Where("supplier_name = ?", *supplierName)
	}
	if fromDate != nil {
		dbCtx = dbCtx.Where("payment_date >= ?", fromDate)
	}
	if toDate != nil {
		dbCtx = dbCtx.Where("payment_date <= ?", toDate)
	}
	if err := dbCtx.Order("payment_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
