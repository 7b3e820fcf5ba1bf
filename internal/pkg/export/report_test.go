package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleEntries() []payroll.PayslipEntry {
	return []payroll.PayslipEntry{
		{
			EmployeeID:   "e1",
			EmployeeName: "هبة",
			Position:     "مصففة",
			Payslip: &payroll.Payslip{
				BaseSalary:      decimal.NewFromInt(2000),
				Commission:      decimal.NewFromInt(500),
				OvertimePay:     decimal.Zero,
				TotalDeductions: decimal.NewFromInt(170),
				NetSalary:       decimal.NewFromInt(2330),
			},
		},
		{
			EmployeeID:   "e2",
			EmployeeName: "منى",
			Payslip: &payroll.Payslip{
				BaseSalary:      decimal.NewFromInt(100),
				TotalDeductions: decimal.NewFromInt(1000),
				NetSalary:       decimal.NewFromInt(-900),
			},
		},
		{EmployeeID: "e3", EmployeeName: "ريم", Error: "employee not found"},
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "2330.00 ج.م", FormatMoney(decimal.NewFromInt(2330), DefaultCurrency))
	assert.Equal(t, "12.35 EGP", FormatMoney(decimal.RequireFromString("12.345"), "EGP"))
	assert.Equal(t, "-900.00", FormatMoney(decimal.NewFromInt(-900), ""))
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(sampleEntries(), "EGP")

	require.Len(t, rows, 4)
	assert.Equal(t, "هبة", rows[0].Employee)
	assert.Equal(t, "2000.00 EGP", rows[0].BaseSalary)
	assert.Equal(t, "2330.00 EGP", rows[0].NetSalary)
	assert.Empty(t, rows[0].Note)

	assert.Equal(t, "-900.00 EGP", rows[1].NetSalary)
	assert.NotEmpty(t, rows[1].Note)

	assert.Equal(t, missingValue, rows[2].NetSalary)
	assert.Equal(t, "employee not found", rows[2].Note)

	total := rows[3]
	assert.Equal(t, "2100.00 EGP", total.BaseSalary)
	assert.Equal(t, "1170.00 EGP", total.Deductions)
	assert.Equal(t, "1430.00 EGP", total.NetSalary)
}

func TestCSV(t *testing.T) {
	out, err := CSV(BuildRows(sampleEntries(), DefaultCurrency))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "employee,position,base_salary,commission,overtime,deductions,net_salary,note", lines[0])
	assert.Contains(t, lines[1], "2330.00 ج.م")
}

func TestXLSX(t *testing.T) {
	out, err := XLSX(BuildRows(sampleEntries(), DefaultCurrency), "March 2025")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "March 2025", f.GetSheetName(0))
	rows, err := f.GetRows("March 2025")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, header[0], rows[0][0])
	assert.Equal(t, "هبة", rows[1][0])
	assert.Equal(t, "2330.00 ج.م", rows[1][6])
}

func TestRender(t *testing.T) {
	rows := BuildRows(sampleEntries(), DefaultCurrency)

	_, ct, err := Render(rows, "CSV", "")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeCSV, ct)

	_, ct, err = Render(rows, FormatXLSX, "")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, ct)

	_, _, err = Render(rows, "pdf", "")
	assert.ErrorIs(t, err, payroll.ErrUnsupportedReportFormat)
}
