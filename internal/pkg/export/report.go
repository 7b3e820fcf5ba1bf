package export

import (
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	DefaultCurrency = "ج.م"

	// Shown in money columns of employees whose payslip failed.
	missingValue = "—"
)

// Row is one printed payroll line. Money columns are already formatted.
type Row struct {
	Employee   string `csv:"employee"`
	Position   string `csv:"position"`
	BaseSalary string `csv:"base_salary"`
	Commission string `csv:"commission"`
	Overtime   string `csv:"overtime"`
	Deductions string `csv:"deductions"`
	NetSalary  string `csv:"net_salary"`
	Note       string `csv:"note"`
}

var header = []string{"الموظف", "الوظيفة", "الراتب الأساسي", "العمولة", "الإضافي", "الخصومات", "الصافي", "ملاحظات"}

func (r Row) cells() []interface{} {
	return []interface{}{r.Employee, r.Position, r.BaseSalary, r.Commission, r.Overtime, r.Deductions, r.NetSalary, r.Note}
}

// FormatMoney renders an amount with two decimals and the currency suffix.
func FormatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + currency
}

// BuildRows turns payslip entries into report rows followed by a totals row.
func BuildRows(entries []payroll.PayslipEntry, currency string) []Row {
	rows := make([]Row, 0, len(entries)+1)
	totalBase, totalCommission, totalOvertime := decimal.Zero, decimal.Zero, decimal.Zero
	totalDeductions, totalNet := decimal.Zero, decimal.Zero

	for _, e := range entries {
		if e.Payslip == nil {
			rows = append(rows, Row{
				Employee:   e.EmployeeName,
				Position:   e.Position,
				BaseSalary: missingValue,
				Commission: missingValue,
				Overtime:   missingValue,
				Deductions: missingValue,
				NetSalary:  missingValue,
				Note:       e.Error,
			})
			continue
		}

		p := e.Payslip
		row := Row{
			Employee:   e.EmployeeName,
			Position:   e.Position,
			BaseSalary: FormatMoney(p.BaseSalary, currency),
			Commission: FormatMoney(p.Commission, currency),
			Overtime:   FormatMoney(p.OvertimePay, currency),
			Deductions: FormatMoney(p.TotalDeductions, currency),
			NetSalary:  FormatMoney(p.NetSalary, currency),
		}
		if p.NetSalary.IsNegative() {
			row.Note = "صافي سالب"
		}
		rows = append(rows, row)

		totalBase = totalBase.Add(p.BaseSalary)
		totalCommission = totalCommission.Add(p.Commission)
		totalOvertime = totalOvertime.Add(p.OvertimePay)
		totalDeductions = totalDeductions.Add(p.TotalDeductions)
		totalNet = totalNet.Add(p.NetSalary)
	}

	rows = append(rows, Row{
		Employee:   "الإجمالي",
		BaseSalary: FormatMoney(totalBase, currency),
		Commission: FormatMoney(totalCommission, currency),
		Overtime:   FormatMoney(totalOvertime, currency),
		Deductions: FormatMoney(totalDeductions, currency),
		NetSalary:  FormatMoney(totalNet, currency),
	})

	return rows
}

// CSV encodes rows with a header line.
func CSV(rows []Row) ([]byte, error) {
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode csv report: %w", err)
	}
	return out, nil
}

// XLSX writes rows to a single-sheet workbook.
func XLSX(rows []Row, sheet string) ([]byte, error) {
	if strings.TrimSpace(sheet) == "" {
		sheet = "Payroll"
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := r.cells()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode xlsx report: %w", err)
	}
	return buf.Bytes(), nil
}

// Render encodes rows in the requested format.
func Render(rows []Row, format, sheet string) (content []byte, contentType string, err error) {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		content, err = CSV(rows)
		return content, ContentTypeCSV, err
	case FormatXLSX:
		content, err = XLSX(rows, sheet)
		return content, ContentTypeXLSX, err
	default:
		return nil, "", payroll.ErrUnsupportedReportFormat
	}
}
