package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// CustomerStatementExcel renders a customer's statement as an xlsx workbook.
func CustomerStatementExcel(ctx context.Context, customerId int) (*excelize.File, error) {

	report, err := GetCustomerStatementReport(ctx, customerId)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Description")
	f.SetCellValue(sheet, "C1", "Debit")
	f.SetCellValue(sheet, "D1", "Credit")
	f.SetCellValue(sheet, "E1", "Balance")

	for i, row := range report.Statement.Rows {
		n := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(n), row.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, "B"+fmt.Sprint(n), row.Description)
		f.SetCellValue(sheet, "C"+fmt.Sprint(n), row.Debit.InexactFloat64())
		f.SetCellValue(sheet, "D"+fmt.Sprint(n), row.Credit.InexactFloat64())
		f.SetCellValue(sheet, "E"+fmt.Sprint(n), row.Balance.InexactFloat64())
	}

	totalRow := len(report.Statement.Rows) + 2
	f.SetCellValue(sheet, "B"+fmt.Sprint(totalRow), "Total")
	f.SetCellValue(sheet, "C"+fmt.Sprint(totalRow), report.Statement.TotalDebit.InexactFloat64())
	f.SetCellValue(sheet, "D"+fmt.Sprint(totalRow), report.Statement.TotalCredit.InexactFloat64())
	f.SetCellValue(sheet, "E"+fmt.Sprint(totalRow), report.AccountBalance.InexactFloat64())

	return f, nil
}

// SupplierStatementExcel renders a supplier's statement as an xlsx workbook.
// The balance column uses the legacy per-row display rule (own amount for
// purchases, running balance for payments).
func SupplierStatementExcel(ctx context.Context, supplierName string) (*excelize.File, error) {

	report, err := GetSupplierStatementReport(ctx, supplierName)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Description")
	f.SetCellValue(sheet, "C1", "Debit")
	f.SetCellValue(sheet, "D1", "Credit")
	f.SetCellValue(sheet, "E1", "Balance")

	for i, row := range report.Statement.Rows {
		n := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(n), row.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, "B"+fmt.Sprint(n), row.Description)
		f.SetCellValue(sheet, "C"+fmt.Sprint(n), row.Debit.InexactFloat64())
		f.SetCellValue(sheet, "D"+fmt.Sprint(n), row.Credit.InexactFloat64())
		f.SetCellValue(sheet, "E"+fmt.Sprint(n), row.DisplayBalance().InexactFloat64())
	}

	totalRow := len(report.Statement.Rows) + 2
	f.SetCellValue(sheet, "B"+fmt.Sprint(totalRow), "Total")
	f.SetCellValue(sheet, "C"+fmt.Sprint(totalRow), report.Statement.TotalDebit.InexactFloat64())
	f.SetCellValue(sheet, "D"+fmt.Sprint(totalRow), report.Statement.TotalCredit.InexactFloat64())
	f.SetCellValue(sheet, "E"+fmt.Sprint(totalRow), report.Statement.CurrentBalance.InexactFloat64())

	return f, nil
}
