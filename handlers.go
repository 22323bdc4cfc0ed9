package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/daftarly/daftar_backend/config"
	"github.com/daftarly/daftar_backend/models"
	"github.com/daftarly/daftar_backend/models/reports"
	"github.com/daftarly/daftar_backend/utils"
	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/businesses", createBusinessHandler)
	api.GET("/businesses/me", getBusinessHandler)

	api.POST("/customers", createCustomerHandler)
	api.GET("/customers", listCustomersHandler)
	api.GET("/customers/:id", getCustomerHandler)
	api.PUT("/customers/:id", updateCustomerHandler)
	api.DELETE("/customers/:id", deleteCustomerHandler)

	api.POST("/suppliers", createSupplierHandler)
	api.GET("/suppliers", listSuppliersHandler)
	api.GET("/suppliers/:id", getSupplierHandler)
	api.PUT("/suppliers/:id", updateSupplierHandler)
	api.DELETE("/suppliers/:id", deleteSupplierHandler)

	api.POST("/invoices", createSalesInvoiceHandler)
	api.GET("/invoices", listSalesInvoicesHandler)
	api.GET("/invoices/:id", getSalesInvoiceHandler)

	api.POST("/receipts", createReceiptHandler)
	api.GET("/receipts", listReceiptsHandler)

	api.POST("/purchases", createPurchaseHandler)
	api.GET("/purchases", listPurchasesHandler)

	api.POST("/supplier-payments", createSupplierPaymentHandler)
	api.GET("/supplier-payments", listSupplierPaymentsHandler)

	api.GET("/reports/customer-statement/:id", customerStatementHandler)
	api.GET("/reports/customer-statement/:id/export", customerStatementExportHandler)
	api.GET("/reports/supplier-statement/:name", supplierStatementHandler)
	api.GET("/reports/supplier-statement/:name/export", supplierStatementExportHandler)
	api.GET("/reports/customer-transactions/:id", customerTransactionsHandler)
}

// respondError maps model errors onto HTTP statuses. Missing records are
// 404s, everything else from the write path is treated as a bad request.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	config.LogError(config.GetLogger(), "handlers", c.HandlerName(), correlationId, c.Request.URL.Path, err)
	c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s, expected YYYY-MM-DD", name)})
		return nil, false
	}
	return &t, true
}

func queryLimit(c *gin.Context) int {
	limit := config.SearchLimit
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return limit
}

func optionalQuery(c *gin.Context, name string) *string {
	v := strings.TrimSpace(c.Query(name))
	return utils.NilIfEmpty(v)
}

func createBusinessHandler(c *gin.Context) {
	var input models.NewBusiness
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	business, err := models.CreateBusiness(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, business)
}

func getBusinessHandler(c *gin.Context) {
	business, err := models.GetBusiness(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

func createCustomerHandler(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func listCustomersHandler(c *gin.Context) {
	name := optionalQuery(c, "name")
	// ?after= switches to cursor pagination; plain list otherwise.
	if after, ok := c.GetQuery("after"); ok || c.Query("paginate") == "true" {
		limit := queryLimit(c)
		var afterPtr *string
		if after != "" {
			afterPtr = &after
		}
		connection, err := models.PaginateCustomer(c.Request.Context(), &limit, afterPtr, name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, connection)
		return
	}
	customers, err := models.GetCustomers(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func getCustomerHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	customer, err := models.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func updateCustomerHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	customer, err := models.UpdateCustomer(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func deleteCustomerHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	customer, err := models.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func createSupplierHandler(c *gin.Context) {
	var input models.NewSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	supplier, err := models.CreateSupplier(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func listSuppliersHandler(c *gin.Context) {
	name := optionalQuery(c, "name")
	if after, ok := c.GetQuery("after"); ok || c.Query("paginate") == "true" {
		limit := queryLimit(c)
		var afterPtr *string
		if after != "" {
			afterPtr = &after
		}
		connection, err := models.PaginateSupplier(c.Request.Context(), &limit, afterPtr, name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, connection)
		return
	}
	suppliers, err := models.GetSuppliers(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func getSupplierHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	supplier, err := models.GetSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func updateSupplierHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	supplier, err := models.UpdateSupplier(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func deleteSupplierHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	supplier, err := models.DeleteSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func createSalesInvoiceHandler(c *gin.Context) {
	var input models.NewSalesInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	invoice, err := models.CreateSalesInvoice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func getSalesInvoiceHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	invoice, err := models.GetSalesInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func listSalesInvoicesHandler(c *gin.Context) {
	customerId, ok := optionalQueryInt(c, "customer_id")
	if !ok {
		return
	}
	if after, hasAfter := c.GetQuery("after"); hasAfter || c.Query("paginate") == "true" {
		limit := queryLimit(c)
		var afterPtr *string
		if after != "" {
			afterPtr = &after
		}
		connection, err := models.PaginateSalesInvoice(c.Request.Context(), &limit, afterPtr, customerId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, connection)
		return
	}
	fromDate, ok := queryDate(c, "from_date")
	if !ok {
		return
	}
	toDate, ok := queryDate(c, "to_date")
	if !ok {
		return
	}
	invoices, err := models.GetSalesInvoices(c.Request.Context(), customerId, fromDate, toDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func createReceiptHandler(c *gin.Context) {
	var input models.NewReceipt
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	receipt, err := models.CreateReceipt(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func listReceiptsHandler(c *gin.Context) {
	customerId, ok := optionalQueryInt(c, "customer_id")
	if !ok {
		return
	}
	fromDate, ok := queryDate(c, "from_date")
	if !ok {
		return
	}
	toDate, ok := queryDate(c, "to_date")
	if !ok {
		return
	}
	receipts, err := models.GetReceipts(c.Request.Context(), customerId, fromDate, toDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

func createPurchaseHandler(c *gin.Context) {
	var input models.NewPurchase
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	purchase, err := models.CreatePurchase(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func listPurchasesHandler(c *gin.Context) {
	supplierName := optionalQuery(c, "supplier_name")
	fromDate, ok := queryDate(c, "from_date")
	if !ok {
		return
	}
	toDate, ok := queryDate(c, "to_date")
	if !ok {
		return
	}
	purchases, err := models.GetPurchases(c.Request.Context(), supplierName, fromDate, toDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func createSupplierPaymentHandler(c *gin.Context) {
	var input models.NewSupplierPayment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	payment, err := models.CreateSupplierPayment(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func listSupplierPaymentsHandler(c *gin.Context) {
	supplierName := optionalQuery(c, "supplier_name")
	fromDate, ok := queryDate(c, "from_date")
	if !ok {
		return
	}
	toDate, ok := queryDate(c, "to_date")
	if !ok {
		return
	}
	payments, err := models.GetSupplierPayments(c.Request.Context(), supplierName, fromDate, toDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func customerTransactionsHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	fromDate, ok := queryDate(c, "from_date")
	if !ok {
		return
	}
	toDate, ok := queryDate(c, "to_date")
	if !ok {
		return
	}
	var docTypes []string
	if raw := strings.TrimSpace(c.Query("doc_types")); raw != "" {
		docTypes = splitAndTrim(raw)
	}
	page := 1
	if v := strings.TrimSpace(c.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	limit := queryLimit(c)
	result, err := models.GetCustomerTransactions(c.Request.Context(), id, fromDate, toDate, docTypes, c.Query("search"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func customerStatementHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	ctx, span := tracer.Start(c.Request.Context(), "reports.customerStatement")
	defer span.End()
	statement, err := reports.GetCustomerStatementReport(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

func customerStatementExportHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	f, err := reports.CustomerStatementExcel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="customer-statement-%d.xlsx"`, id))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

func supplierStatementHandler(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplier name is required"})
		return
	}
	ctx, span := tracer.Start(c.Request.Context(), "reports.supplierStatement")
	defer span.End()
	statement, err := reports.GetSupplierStatementReport(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

func supplierStatementExportHandler(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplier name is required"})
		return
	}
	f, err := reports.SupplierStatementExcel(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="supplier-statement-%s.xlsx"`, name))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

func optionalQueryInt(c *gin.Context, name string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return nil, false
	}
	return &n, true
}
