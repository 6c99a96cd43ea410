package clean

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/procwatch-dev/procwatch/internal/model"
	"github.com/procwatch-dev/procwatch/internal/registry"
)

// Options holds the tunable thresholds of the cleaning cascade.
type Options struct {
	StrictThreshold  int
	LenientThreshold int
	MillionUnit      decimal.Decimal
}

// DefaultOptions returns the standard thresholds: strict provider matches
// at 80, lenient at 60, millions shorthand scaled by 1,000,000.
func DefaultOptions() Options {
	return Options{
		StrictThreshold:  80,
		LenientThreshold: 60,
		MillionUnit:      decimal.NewFromInt(1_000_000),
	}
}

// Pipeline cleans transaction records against a contract registry index.
// The index is read-only for the pipeline's lifetime, so one Pipeline may
// be shared across workers.
type Pipeline struct {
	idx       *registry.Index
	providers []string
	opts      Options
}

// NewPipeline creates a Pipeline over a built registry index.
func NewPipeline(idx *registry.Index, opts Options) *Pipeline {
	return &Pipeline{idx: idx, providers: idx.Providers(), opts: opts}
}

// Process runs one record through the full cascade in dependency order:
// provider, amount, date, title (needs provider), number (needs provider
// and title), then the issue ledger. Field failures stay local to the
// record; Process never fails.
func (p *Pipeline) Process(raw model.RawTransaction) model.TransactionRecord {
	rec := model.TransactionRecord{Raw: raw}

	rec.CleanProvider, rec.ProviderOutcome = Provider(raw.Provider, p.providers, p.opts.StrictThreshold, p.opts.LenientThreshold)
	rec.CleanAmount, rec.AmountOutcome = Amount(raw.InvoiceAmount, p.opts.MillionUnit)
	rec.CleanDate, rec.DateOutcome = Date(raw.InvoiceDate)
	rec.CleanTitle, rec.TitleOutcome = Title(rec.CleanProvider, raw.ContractTitle, raw.ContractNumber, p.idx)
	rec.CleanNumber, rec.NumberOutcome = Number(rec.CleanProvider, raw.ContractNumber, rec.CleanTitle, p.idx)

	RecordIssues(&rec)
	return rec
}

// ProcessAll cleans a batch with up to workers goroutines. Records are
// independent, so order is preserved by index and the only error source is
// context cancellation.
func (p *Pipeline) ProcessAll(ctx context.Context, raws []model.RawTransaction, workers int) ([]model.TransactionRecord, error) {
	if workers < 1 {
		workers = 1
	}

	records := make([]model.TransactionRecord, len(raws))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = p.Process(raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
