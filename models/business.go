package models

import (
	"context"
	"errors"
	"time"

	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/google/uuid"
)

// Business is the tenant root. Every other record carries its id.
type Business struct {
	ID          uuid.UUID `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	ContactName string    `gorm:"size:100" json:"contact_name"`
	Email       string    `gorm:"size:255" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Address     string    `gorm:"type:text" json:"address"`
	Currency    string    `gorm:"size:10;default:'SAR'" json:"currency"`
	Timezone    string    `gorm:"size:50;default:'Asia/Riyadh'" json:"timezone"`
	DeviceLimit int       `gorm:"default:1" json:"device_limit"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusiness struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Currency    string `json:"currency"`
	Timezone    string `json:"timezone"`
}

func CreateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {

	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}

	business := Business{
		ID:          uuid.New(),
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Currency:    input.Currency,
		Timezone:    input.Timezone,
		IsActive:    utils.NewTrue(),
	}
	if business.Currency == "" {
		business.Currency = "SAR"
	}
	if business.Timezone == "" {
		business.Timezone = "Asia/Riyadh"
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func GetBusiness(ctx context.Context) (*Business, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var business Business
	if err := db.WithContext(ctx).First(&business, "id = ?", businessId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &business, nil
}
