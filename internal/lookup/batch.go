package lookup

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/models"
)

// Result is the outcome for one code of a batch lookup.
type Result struct {
	Code    barcode.Code
	Product models.Product
	Err     error
}

// Offers is the outcome for one code of a batch comparison.
type Offers struct {
	Code   barcode.Code
	Stores map[string]models.Product
	Err    error
}

// LookupMany resolves codes at one store concurrently. Results keep the
// order of codes; a failed code carries its error and does not stop the rest.
// The returned error is only set when ctx is cancelled.
func (c *Client) LookupMany(ctx context.Context, codes []barcode.Code, storeID string) ([]Result, error) {
	results := make([]Result, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			p, err := c.Lookup(gctx, code, storeID)
			results[i] = Result{Code: code, Product: p, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results, ctx.Err()
}

// CompareMany fetches every store's offer for each code concurrently.
func (c *Client) CompareMany(ctx context.Context, codes []barcode.Code) ([]Offers, error) {
	results := make([]Offers, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			stores, err := c.LookupAll(gctx, code)
			results[i] = Offers{Code: code, Stores: stores, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results, ctx.Err()
}
