package receipts

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// Ledger appends one row per confirmed line to the active-orders file (ativos.csv)
type Ledger struct {
	path string
	mu   sync.Mutex
}

// NewLedger returns a ledger writing to path. The file is created on first append.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the ledger file location
func (l *Ledger) Path() string {
	return l.path
}

// Append writes id,cliente,item,total for the line
func (l *Ledger) Append(line models.OrderLine) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		strconv.FormatInt(line.ID, 10),
		line.Customer.Name,
		line.ProductName,
		line.TotalPrice.StringFixed(2),
	}); err != nil {
		return fmt.Errorf("failed to append ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to append ledger row: %w", err)
	}
	return nil
}
