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

type Purchase struct {
	ID           int       `gorm:"primary_key" json:"id"`
	BusinessId   string    `gorm:"index;not null" json:"business_id" binding:"required"`
	SupplierName string    `gorm:"index;size:100;not null" json:"supplier_name" binding:"required"`
	PurchaseDate time.Time `gorm:"index;not null" json:"purchase_date" binding:"required"`
	// PurchasePrice is the purchase total, not a unit price.
	PurchasePrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchase_price" binding:"required"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchase struct {
	SupplierName  string          `json:"supplier_name" binding:"required"`
	PurchaseDate  time.Time       `json:"purchase_date" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	Notes         string          `json:"notes"`
}

func (p Purchase) GetId() int {
	return p.ID
}

func (p Purchase) GetBusinessId() string {
	return p.BusinessId
}

func (p Purchase) GetCursor() string {
	return p.PurchaseDate.Format(time.RFC3339)
}

func (input *NewPurchase) validate(ctx context.Context, businessId string) error {
	if err := utils.ValidateResourceBy[Supplier](ctx, businessId, "name", input.SupplierName); err != nil {
		return errors.New("supplier not found")
	}
	if !input.PurchasePrice.IsPositive() {
		return errors.New("purchase price must be positive")
	}
	if input.PurchaseDate.IsZero() {
		return errors.New("purchase date is required")
	}
	return nil
}

func CreatePurchase(ctx context.Context, input *NewPurchase) (*Purchase, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}

	var purchase Purchase
	var supplier Supplier
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ? AND name = ?", businessId, input.SupplierName).
			First(&supplier).Error; err != nil {
			return utils.ErrorRecordNotFound
		}

		purchase = Purchase{
			BusinessId:    businessId,
			SupplierName:  input.SupplierName,
			PurchaseDate:  input.PurchaseDate,
			PurchasePrice: input.PurchasePrice,
			Notes:         input.Notes,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		newBalance := supplier.TotalBalance.Add(input.PurchasePrice)
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
	return &purchase, nil
}

func GetPurchases(ctx context.Context, supplierName *string, fromDate, toDate *time.Time) ([]*Purchase, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var results []*Purchase
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if supplierName != nil && len(*supplierName) > 0 {
		dbCtx = dbCtx.Where("supplier_name = ?", *supplierName)
	}
	if fromDate != nil {
		dbCtx = dbCtx.Where("purchase_date >= ?", fromDate)
	}
	if toDate != nil {
		dbCtx = dbCtx.Where("purchase_date <= ?", toDate)
	}
	if err := dbCtx.Order("purchase_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
