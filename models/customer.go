package models

import (
	"context"
	"errors"
	"time"

	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BusinessId     string          `gorm:"index;not null" json:"business_id" binding:"required"`
	Name           string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Email          string          `gorm:"size:100" json:"email"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Mobile         string          `gorm:"size:20" json:"mobile"`
	Address        string          `gorm:"type:text" json:"address"`
	Notes          string          `gorm:"type:text" json:"notes"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	// TotalBalance is the denormalized owed balance, maintained on every
	// invoice/receipt write. The statement report only reads it back.
	TotalBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_balance"`
	IsActive     *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name           string          `json:"name" binding:"required"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Mobile         string          `json:"mobile"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type CustomersEdge Edge[Customer]
type CustomersConnection struct {
	PageInfo *PageInfo        `json:"pageInfo"`
	Edges    []*CustomersEdge `json:"edges"`
}

func (c Customer) GetId() int {
	return c.ID
}

func (c Customer) GetBusinessId() string {
	return c.BusinessId
}

// returns decoded cursor string
func (c Customer) GetCursor() string {
	return c.Name
}

// validate input for both create & update. (id = 0 for create)
func (input *NewCustomer) validate(ctx context.Context, businessId string, id int) error {
	// name
	if err := utils.ValidateUnique[Customer](ctx, businessId, "name", input.Name, id); err != nil {
		return err
	}
	// email
	if len(input.Email) > 0 && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	// phone
	if len(input.Phone) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	if len(input.Mobile) > 0 {
		if err := utils.ValidatePhoneNumber(input.Mobile, utils.CountryCode); err != nil {
			return err
		}
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	customer := Customer{
		BusinessId:     businessId,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Mobile:         input.Mobile,
		Address:        input.Address,
		Notes:          input.Notes,
		OpeningBalance: input.OpeningBalance,
		TotalBalance:   input.OpeningBalance,
		IsActive:       utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedis[Customer](customer.ID, businessId); err != nil {
		return nil, err
	}
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchModel[Customer](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&customer).Updates(map[string]interface{}{
		"Name":    input.Name,
		"Email":   input.Email,
		"Phone":   input.Phone,
		"Mobile":  input.Mobile,
		"Address": input.Address,
		"Notes":   input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	if err := utils.RemoveRedis[Customer](id, businessId); err != nil {
		return nil, err
	}
	return customer, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	customer, err := utils.FetchModel[Customer](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	// customers with transaction history keep their ledger; block the delete
	count, err := utils.ResourceCountWhere[SalesInvoice](ctx, businessId, "customer_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("customer has transactions and cannot be deleted")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&customer).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedis[Customer](id, businessId); err != nil {
		return nil, err
	}
	return customer, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return GetResource[Customer](ctx, id)
}

func GetCustomers(ctx context.Context, name *string) ([]*Customer, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	// the unfiltered list is the hot path (dropdowns); serve it cached
	if name == nil || *name == "" {
		return ListAllResource[Customer](ctx, "name")
	}

	db := config.GetDB()
	var results []*Customer
	dbCtx := db.WithContext(ctx).
		Where("business_id = ?", businessId).
		Where("name LIKE ?", "%"+*name+"%")
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateCustomer(ctx context.Context, limit *int, after *string, name *string) (*CustomersConnection, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	edges, pageInfo, err := FetchPagePureCursor[Customer](dbCtx, utils.DereferencePtr(limit, config.SearchLimit), after, "name", ">")
	if err != nil {
		return nil, err
	}
	var connection CustomersConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		customerEdge := CustomersEdge(edge)
		connection.Edges = append(connection.Edges, &customerEdge)
	}
	return &connection, nil
}
