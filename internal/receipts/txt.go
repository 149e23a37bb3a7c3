package receipts

import (
	"fmt"
	"strings"
)

const (
	receiptRule     = "=========================================="
	receiptThinRule = "------------------------------------------"
	receiptItemRule = " - - - - - - - - - - - - - - - - - - - - -"
)

// TextReceipt renders the 42-column monospace receipt
func TextReceipt(b Batch) []byte {
	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	line(receiptRule)
	line("                PIZZAONE                  ")
	line("            PREMIUM DELIVERY              ")
	line(receiptRule)
	line("DATA: " + b.At.Format(DateLayout))
	line(receiptThinRule)
	line("ITEM                            VALOR (R$)")
	line(receiptThinRule)

	for _, item := range b.Lines {
		line(fmt.Sprintf("%dx %s (%s)", item.Quantity, item.ProductName, item.Size))
		if len(item.RemovedIngredients) > 0 {
			line("   Sem: " + strings.Join(item.RemovedIngredients, ", "))
		}
		if item.Note != "" {
			line("   Obs: " + item.Note)
		}
		line(fmt.Sprintf("%32s%10s", "", item.TotalPrice.StringFixed(2)))
		line(receiptItemRule)
	}

	line(receiptThinRule)
	line(fmt.Sprintf("%-32s%10s", "TOTAL:", b.Total().StringFixed(2)))
	line(receiptRule)
	line("        OBRIGADO PELA PREFERENCIA!        ")
	line(receiptRule)

	return []byte(sb.String())
}
