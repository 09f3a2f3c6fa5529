package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"fintrack/internal/models"
)

const statementMaxRows = 500

// StatementInput is the data printed on a statement.
type StatementInput struct {
	Title        string
	User         *models.User
	Start        models.Date
	End          models.Date
	Transactions []models.Transaction
	GeneratedAt  time.Time
}

var statementColumns = []struct {
	title string
	width float64
	align string
}{
	{"DATE", 26, "C"},
	{"TYPE", 22, "C"},
	{"CATEGORY", 40, "L"},
	{"DESCRIPTION", 62, "L"},
	{"AMOUNT", 32, "R"},
}

// Statement renders the transactions of a date range as an A4 PDF with
// income, expense and balance totals.
func Statement(in StatementInput) ([]byte, error) {
	summary := IncomeVsExpenses(in.Transactions)
	currency := models.DefaultCurrency
	if in.User != nil && in.User.Currency != "" {
		currency = in.User.Currency
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(in.Title+" Statement", false)
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 10, in.Title+" Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", in.Start, in.End))
	pdf.Ln(5)
	if in.User != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Account: %s <%s>", in.User.FullName, in.User.Email))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 10, "Income ("+currency+")", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 10, "Expenses ("+currency+")", "1", 0, "C", true, 0, "")
	pdf.CellFormat(62, 10, "Net ("+currency+")", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(60, 10, formatAmount(summary.Income), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 10, formatAmount(summary.Expenses), "1", 0, "C", false, 0, "")
	pdf.CellFormat(62, 10, formatAmount(summary.Net), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	statementHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)
	if len(in.Transactions) == 0 {
		pdf.CellFormat(0, 8, "No transactions in this period", "1", 1, "C", false, 0, "")
	}
	for i, tx := range in.Transactions {
		if i >= statementMaxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, fmt.Sprintf("%d more transactions not shown", len(in.Transactions)-statementMaxRows), "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			statementHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		description := ""
		if tx.Description != nil {
			description = *tx.Description
		}
		amount := formatAmount(tx.Amount)
		if tx.Type == models.TransactionTypeExpense {
			amount = "-" + amount
		}

		cells := []string{tx.Date.String(), strings.ToUpper(string(tx.Type)), truncate(tx.Category, 24), truncate(description, 40), amount}
		for j, col := range statementColumns {
			ln := 0
			if j == len(statementColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 8, cells[j], "1", ln, col.align, false, 0, "")
		}
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+in.GeneratedAt.UTC().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering statement: %w", err)
	}
	return buf.Bytes(), nil
}

func statementHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	for i, col := range statementColumns {
		ln := 0
		if i == len(statementColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 8, col.title, "1", ln, col.align, true, 0, "")
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
