// Package normalizer maps order lines to and from the wide pedidos row.
//
// The row still carries columns from an older schema. Writes fill both the current and the legacy
// columns; reads prefer the current ones and fall back to legacy values. Legacy column names do not
// leave this package and models.OrderRecord.
package normalizer

import (
	"strings"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// RemovedPrefix marks the removed-ingredients encoding in item_extra.
// Free text that happens to start with this prefix is decoded as a list as well.
const RemovedPrefix = "Sem: "

const removedSeparator = ", "

// EncodeRemoved renders removed ingredients for storage. An empty list becomes "".
func EncodeRemoved(removed []string) string {
	if len(removed) == 0 {
		return ""
	}
	return RemovedPrefix + strings.Join(removed, removedSeparator)
}

// DecodeRemoved parses item_extra. Anything without the exact prefix yields an empty list.
func DecodeRemoved(extra string) []string {
	if !strings.HasPrefix(extra, RemovedPrefix) {
		return []string{}
	}
	body := strings.TrimPrefix(extra, RemovedPrefix)
	if body == "" {
		return []string{}
	}
	return strings.Split(body, removedSeparator)
}

// ToRecord shapes a line for persistence
func ToRecord(line models.OrderLine) models.OrderRecord {
	category := string(line.Category)
	if category == "" {
		category = string(models.CategoryPizza)
	}
	return models.OrderRecord{
		ID:              line.ID,
		Cliente:         line.Customer.Name,
		Telefone:        line.Customer.Phone,
		Endereco:        line.Customer.Address,
		CPF:             line.Customer.TaxID,
		Observacao:      line.Note,
		NomeItem:        line.ProductName,
		Categoria:       category,
		PedidoPizza:     line.ProductName,
		TamanhoPizza:    line.Size,
		QuantidadePizza: line.Quantity,
		ItemExtra:       EncodeRemoved(line.RemovedIngredients),
		EnderecoEntrega: line.Customer.Address,
		CPFNota:         line.Customer.TaxID,
		PrecoItemExtra:  line.Surcharge,
		PrecoUnitario:   line.UnitPrice,
		PrecoTotal:      line.TotalPrice,
		HoraPedido:      line.CreatedAt,
	}
}

// FromRecord rebuilds a line from a stored row
func FromRecord(rec models.OrderRecord) models.OrderLine {
	category := models.ParseCategory(rec.Categoria)
	if category == "" {
		category = models.CategoryPizza
	}
	return models.OrderLine{
		ID:                 rec.ID,
		ProductName:        firstNonEmpty(rec.NomeItem, rec.PedidoPizza),
		Category:           category,
		Size:               rec.TamanhoPizza,
		Quantity:           rec.QuantidadePizza,
		UnitPrice:          rec.PrecoUnitario,
		Surcharge:          rec.PrecoItemExtra,
		TotalPrice:         rec.PrecoTotal,
		RemovedIngredients: DecodeRemoved(rec.ItemExtra),
		Note:               rec.Observacao,
		Customer: models.Customer{
			Name:    rec.Cliente,
			Phone:   rec.Telefone,
			Address: firstNonEmpty(rec.Endereco, rec.EnderecoEntrega),
			TaxID:   firstNonEmpty(rec.CPF, rec.CPFNota),
		},
		CreatedAt: rec.HoraPedido,
	}
}

// Columns turns the set fields of a patch into column assignments.
// Only present fields appear, so "" and 0 are written as values.
func Columns(patch models.OrderPatch) map[string]any {
	cols := map[string]any{}
	if v, ok := patch.Size.Get(); ok {
		cols["tamanho_pizza"] = v
	}
	if v, ok := patch.Quantity.Get(); ok {
		cols["quantidade_pizza"] = v
	}
	if v, ok := patch.RemovedIngredients.Get(); ok {
		cols["item_extra"] = EncodeRemoved(v)
	}
	if v, ok := patch.Note.Get(); ok {
		cols["observacao"] = v
	}
	if v, ok := patch.CustomerName.Get(); ok {
		cols["cliente"] = v
	}
	if v, ok := patch.CustomerPhone.Get(); ok {
		cols["telefone"] = v
	}
	if v, ok := patch.CustomerAddress.Get(); ok {
		cols["endereco"] = v
		cols["endereco_entrega"] = v
	}
	if v, ok := patch.CustomerTaxID.Get(); ok {
		cols["cpf"] = v
		cols["cpf_nota"] = v
	}
	if v, ok := patch.TotalPrice.Get(); ok {
		cols["preco_total"] = v
	}
	return cols
}

// ApplyPatch writes the set fields of patch into rec, mirroring Columns.
// It reports whether anything was applied.
func ApplyPatch(rec *models.OrderRecord, patch models.OrderPatch) bool {
	if patch.IsEmpty() {
		return false
	}
	if v, ok := patch.Size.Get(); ok {
		rec.TamanhoPizza = v
	}
	if v, ok := patch.Quantity.Get(); ok {
		rec.QuantidadePizza = v
	}
	if v, ok := patch.RemovedIngredients.Get(); ok {
		rec.ItemExtra = EncodeRemoved(v)
	}
	if v, ok := patch.Note.Get(); ok {
		rec.Observacao = v
	}
	if v, ok := patch.CustomerName.Get(); ok {
		rec.Cliente = v
	}
	if v, ok := patch.CustomerPhone.Get(); ok {
		rec.Telefone = v
	}
	if v, ok := patch.CustomerAddress.Get(); ok {
		rec.Endereco = v
		rec.EnderecoEntrega = v
	}
	if v, ok := patch.CustomerTaxID.Get(); ok {
		rec.CPF = v
		rec.CPFNota = v
	}
	if v, ok := patch.TotalPrice.Get(); ok {
		rec.PrecoTotal = v
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
