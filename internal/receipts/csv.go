package receipts

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

var reportHeader = []string{
	"ID", "Data", "Item", "Categoria", "Tamanho", "Quantidade",
	"PrecoUnitario", "PrecoTotal", "Observacao", "SemIngredientes",
}

// CSVReport renders one row per line under the report header
func CSVReport(b Batch) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	date := b.At.Format(DateLayout)
	for _, line := range b.Lines {
		row := []string{
			strconv.FormatInt(line.ID, 10),
			date,
			line.ProductName,
			string(line.Category),
			line.Size,
			strconv.Itoa(line.Quantity),
			line.UnitPrice.StringFixed(2),
			line.TotalPrice.StringFixed(2),
			strings.ReplaceAll(line.Note, ",", " "),
			strings.Join(line.RemovedIngredients, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write report row %d: %w", line.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush report: %w", err)
	}
	return buf.Bytes(), nil
}
