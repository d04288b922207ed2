package notify

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
)

// Sender is the delivery backend for a rendered receipt.
type Sender interface {
	Send(recipients []string, tx models.Transaction, receipt []byte) error
}

// Pipeline renders the receipt artifact and hands it to the delivery
// backend. The lending engine invokes it after a borrow commits and only
// logs failures, so nothing here may mutate lending state.
type Pipeline struct {
	sender Sender
	log    *slog.Logger
}

func NewPipeline(sender Sender, log *slog.Logger) *Pipeline {
	return &Pipeline{sender: sender, log: log}
}

// Notify builds the receipt and delivers it to the deduplicated,
// non-empty recipient set.
func (p *Pipeline) Notify(ctx context.Context, recipients []string, tx models.Transaction) error {
	to := dedupe(recipients)
	if len(to) == 0 {
		return errors.New("no recipients for borrow confirmation")
	}

	receipt, err := BuildReceipt(tx)
	if err != nil {
		return errors.Wrap(err, "build receipt")
	}

	p.log.Info("sending borrow confirmation", "borrow_code", tx.BorrowCode, "recipients", len(to))
	return p.sender.Send(to, tx, receipt)
}

func dedupe(recipients []string) []string {
	seen := make(map[string]bool, len(recipients))
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
