// Package receipts renders the files emitted at checkout: the CSV report, the plain-text
// receipt, the printable HTML receipt (optionally as PDF) and the active-orders ledger.
package receipts

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// DateLayout is the dd/mm/yyyy hh:mm:ss stamp printed on reports and receipts
const DateLayout = "02/01/2006 15:04:05"

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Batch is the snapshot of active lines taken at checkout
type Batch struct {
	Lines []models.OrderLine
	At    time.Time
}

// Total sums the line totals
func (b Batch) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.Lines {
		total = total.Add(line.TotalPrice)
	}
	return total
}

func (b Batch) stamp() int64 {
	return b.At.UnixMilli()
}

// CSVName is the report file name for the batch
func (b Batch) CSVName() string { return fmt.Sprintf("relatorio_pedidos_%d.csv", b.stamp()) }

// TextName is the plain-text receipt file name
func (b Batch) TextName() string { return fmt.Sprintf("comprovante_%d.txt", b.stamp()) }

// HTMLName is the printable receipt file name
func (b Batch) HTMLName() string { return fmt.Sprintf("comprovante_%d.html", b.stamp()) }

// PDFName is the rendered receipt file name
func (b Batch) PDFName() string { return fmt.Sprintf("comprovante_%d.pdf", b.stamp()) }

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 1.234,50"
func FormatBRL(amount decimal.Decimal) string {
	return brl.Sprintf("R$ %.2f", amount.Round(2).InexactFloat64())
}
