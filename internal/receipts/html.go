package receipts

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"brl":  func(d decimal.Decimal) string { return FormatBRL(d) },
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <title>Comprovante - PizzaOne</title>
    <style>
      body { font-family: 'Courier New', monospace; font-size: 12px; width: 300px; margin: 0; padding: 10px; color: #000; background: #fff; }
      .header { text-align: center; margin-bottom: 10px; border-bottom: 1px dashed #000; padding-bottom: 5px; }
      .title { font-size: 16px; font-weight: bold; margin: 0; }
      .info { margin: 2px 0; }
      .items { width: 100%; border-collapse: collapse; margin-bottom: 10px; }
      .item-row { vertical-align: top; }
      .qty { width: 30px; font-weight: bold; }
      .name { text-align: left; }
      .price { text-align: right; white-space: nowrap; }
      .details { font-size: 10px; color: #444; margin-left: 30px; margin-bottom: 5px; display: block; font-style: italic; }
      .total { border-top: 1px dashed #000; padding-top: 5px; margin-top: 5px; font-weight: bold; font-size: 14px; display: flex; justify-content: space-between; }
      .footer { text-align: center; margin-top: 20px; font-size: 10px; border-top: 1px dotted #ccc; padding-top: 5px; }
    </style>
  </head>
  <body>
    <div class="header">
      <h1 class="title">PizzaOne</h1>
      <p class="info">Premium Delivery</p>
      <p class="info">{{.Date}}</p>
    </div>
    <table class="items">
      {{- range .Lines}}
      <tr class="item-row">
        <td class="qty">{{.Quantity}}x</td>
        <td class="name">{{.ProductName}}<br/><span style="font-size: 10px;">({{.Size}})</span></td>
        <td class="price">{{brl .TotalPrice}}</td>
      </tr>
      <tr>
        <td colspan="3">
          {{- if .RemovedIngredients}}<span class="details">- Sem: {{join .RemovedIngredients ", "}}</span>{{end}}
          {{- if .Note}}<span class="details">Obs: {{.Note}}</span>{{end}}
        </td>
      </tr>
      {{- end}}
    </table>
    <div class="total">
      <span>TOTAL</span>
      <span>{{brl .GrandTotal}}</span>
    </div>
    <div class="footer">
      <p>Obrigado pela preferência!</p>
      <p>www.pizzaone.com.br</p>
    </div>
    {{- if .AutoPrint}}
    <script>
      window.onload = function() { window.print(); setTimeout(function(){ window.close(); }, 500); }
    </script>
    {{- end}}
  </body>
</html>
`))

// HTMLReceipt renders the printable receipt. With autoPrint the page opens the print
// dialog on load and closes itself afterwards.
func HTMLReceipt(b Batch, autoPrint bool) ([]byte, error) {
	var buf bytes.Buffer
	err := receiptTemplate.Execute(&buf, struct {
		Batch
		Date       string
		GrandTotal decimal.Decimal
		AutoPrint  bool
	}{
		Batch:      b,
		Date:       b.At.Format(DateLayout),
		GrandTotal: b.Total(),
		AutoPrint:  autoPrint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
