package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzaone-api/internal/metrics"
	"github.com/franciscosanchezn/pizzaone-api/internal/repository"
)

const (
	defaultInvoiceDelay = time.Second
	invoiceURLPattern   = "https://www.nfe.fazenda.gov.br/exemplo-nota-%d.pdf"
)

// InvoiceService issues the tax document (NF-e) of an order. Emission is simulated.
type InvoiceService struct {
	recorder repository.InvoiceRecorder
	delay    time.Duration
	metrics  *metrics.Metrics

	wg sync.WaitGroup
}

// NewInvoiceService creates the stub emitter. A non-positive delay uses one second.
func NewInvoiceService(recorder repository.InvoiceRecorder, delay time.Duration, m *metrics.Metrics) *InvoiceService {
	if delay <= 0 {
		delay = defaultInvoiceDelay
	}
	return &InvoiceService{recorder: recorder, delay: delay, metrics: m}
}

// InvoiceURL is the document link recorded for an order
func InvoiceURL(id int64) string {
	return fmt.Sprintf(invoiceURLPattern, id)
}

// Issue waits for the simulated emission and records the document link
func (s *InvoiceService) Issue(ctx context.Context, id int64) (string, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	url := InvoiceURL(id)
	if err := s.recorder.MarkInvoiceIssued(ctx, id, url); err != nil {
		return "", fmt.Errorf("failed to record invoice for order %d: %w", id, err)
	}
	if s.metrics != nil {
		s.metrics.InvoicesIssued.Inc()
	}
	log.WithFields(logrus.Fields{"id": id, "url": url}).Info("Invoice issued")
	return url, nil
}

// IssueAsync runs Issue in the background. The request context is not used so the
// emission outlives the HTTP call.
func (s *InvoiceService) IssueAsync(id int64) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.delay+30*time.Second)
		defer cancel()
		if _, err := s.Issue(ctx, id); err != nil {
			log.WithField("id", id).WithError(err).Error("Invoice emission failed")
		}
	}()
}

// Wait blocks until background emissions finish
func (s *InvoiceService) Wait() {
	s.wg.Wait()
}
