package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/cart"
	"github.com/Rorical/MiLista/internal/decoder"
	"github.com/Rorical/MiLista/internal/eventbus"
	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/internal/scan"
)

// Lookuper resolves codes to product data. *lookup.Client implements it.
type Lookuper interface {
	Lookup(ctx context.Context, code barcode.Code, storeID string) (models.Product, error)
	LookupAll(ctx context.Context, code barcode.Code) (map[string]models.Product, error)
}

// Options wire a ShoppingService.
type Options struct {
	Mode   models.Mode
	Store  lookup.Store
	Device decoder.Device
	Lookup Lookuper
	Logger *zap.Logger
}

type lookupResult struct {
	code    barcode.Code
	product models.Product
	offers  map[string]models.Product
	err     error
}

// ShoppingService is the single logical actor of the app. One goroutine owns
// the scan controller, the pending gate and the cart; decoder events, UI
// events and lookup results all funnel into it.
type ShoppingService struct {
	mode     models.Mode
	store    lookup.Store
	logger   *zap.Logger
	eventBus *eventbus.EventBus
	lookups  Lookuper
	state    *SessionState
	list     *cart.List
	scanner  *scan.Controller
	gate     *scan.Gate
	results  chan lookupResult
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	lookupWG sync.WaitGroup
	started  bool
	stopOnce sync.Once
}

func NewShoppingService(opts Options, eb *eventbus.EventBus) (*ShoppingService, error) {
	if opts.Lookup == nil {
		return nil, errors.New("core: lookup client is required")
	}
	if opts.Store.ID == "" {
		opts.Store, _ = lookup.FindStore(lookup.DefaultStoreID)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	service := &ShoppingService{
		mode:     opts.Mode,
		store:    opts.Store,
		logger:   opts.Logger,
		eventBus: eb,
		lookups:  opts.Lookup,
		state:    NewSessionState(),
		list:     cart.NewList(),
		results:  make(chan lookupResult),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	service.scanner = scan.NewController(opts.Device, scan.SinkFunc(service.accept), opts.Logger.Named("scan"))
	return service, nil
}

// Start runs the core logic in a goroutine
func (s *ShoppingService) Start() {
	s.started = true
	s.pushStateToUI()
	go s.eventLoop()
}

// Stop ends the loop, releases the scanner and waits for in-flight lookups.
func (s *ShoppingService) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.started {
			<-s.done
		}
		if err := s.scanner.Stop(); err != nil {
			s.logger.Warn("scanner release failed", zap.Error(err))
		}
		s.lookupWG.Wait()
	})
}

func (s *ShoppingService) Mode() models.Mode {
	return s.mode
}

func (s *ShoppingService) Store() lookup.Store {
	return s.store
}

func (s *ShoppingService) eventLoop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		case ev, ok := <-s.scanner.Events():
			if !ok {
				s.stopScanner("Scanner disconnected")
				continue
			}
			s.handleDecoderEvent(ev)
		case res := <-s.results:
			s.applyLookup(res)
		}
	}
}

func (s *ShoppingService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.ToggleScannerEvent:
		if s.scanner.State() == models.Idle {
			s.startScanner()
		} else {
			s.stopScanner("Scanner off")
		}
	case eventbus.ConfirmationResponseEvent:
		s.handleConfirmationResponse(e)
	case eventbus.ManualEntryEvent:
		s.handleManualEntry(e.Input)
	case eventbus.AdjustQuantityEvent:
		if _, err := s.list.SetQuantity(barcode.Code(e.Code), e.Delta); err != nil {
			s.logger.Debug("quantity change ignored", zap.String("code", e.Code), zap.Error(err))
			return
		}
		s.pushStateToUI()
	case eventbus.RemoveItemEvent:
		if s.list.Remove(barcode.Code(e.Code)) {
			s.state.DropOffers(e.Code)
			s.state.SetStatus("Removed " + e.Code)
			s.pushStateToUI()
		}
	}
}

func (s *ShoppingService) handleDecoderEvent(ev decoder.Event) {
	gate := s.scanner.Handle(ev)
	if gate == nil {
		return
	}
	s.gate = gate
	s.state.SetStatus("Confirm " + gate.Code().String())
	if err := s.eventBus.SendToUI(eventbus.ConfirmationRequestEvent{
		ID:   gate.ID(),
		Code: gate.Code().String(),
	}); err != nil {
		s.logger.Warn("confirmation request not delivered", zap.Error(err))
	}
	s.pushStateToUI()
}

func (s *ShoppingService) handleConfirmationResponse(e eventbus.ConfirmationResponseEvent) {
	gate := s.gate
	if gate == nil || gate.ID() != e.ID {
		s.logger.Debug("stale confirmation response", zap.String("id", e.ID))
		return
	}
	s.gate = nil

	if e.Approved {
		code, err := gate.Confirm()
		if err != nil {
			s.logger.Debug("confirmation rejected", zap.Error(err))
		} else {
			s.state.SetStatus("Added " + code.String())
		}
	} else {
		if err := gate.Cancel(); err != nil {
			s.logger.Debug("cancel rejected", zap.Error(err))
		}
		s.state.SetStatus("Scanning")
	}
	s.pushStateToUI()
}

func (s *ShoppingService) handleManualEntry(input string) {
	code, err := barcode.ParseManual(input)
	if err != nil {
		failure := models.NewFailure(models.InvalidManualEntry, "core.manual_entry", err)
		s.logger.Debug("invalid manual entry", zap.String("input", input), zap.Error(failure))
		return
	}
	s.accept(code)
	s.state.SetStatus("Added " + code.String())
	s.pushStateToUI()
}

// accept is the cart hand-off for confirmed and manually entered codes.
// Only a new code triggers a lookup; repeats just increment.
func (s *ShoppingService) accept(code barcode.Code) {
	if _, created := s.list.AddOrIncrement(code, nil); !created {
		if s.mode == models.ModeList {
			s.logger.Debug("quantity incremented", zap.String("code", code.String()))
		}
		return
	}
	s.startLookup(code)
}

func (s *ShoppingService) startLookup(code barcode.Code) {
	s.state.BeginLookup()
	s.lookupWG.Add(1)
	go func() {
		defer s.lookupWG.Done()

		res := lookupResult{code: code}
		if s.mode == models.ModeCompare {
			res.offers, res.err = s.lookups.LookupAll(s.ctx, code)
		} else {
			res.product, res.err = s.lookups.Lookup(s.ctx, code, s.store.ID)
		}

		select {
		case s.results <- res:
		case <-s.ctx.Done():
		}
	}()
}

func (s *ShoppingService) applyLookup(res lookupResult) {
	s.state.EndLookup()

	if res.err != nil {
		failure := models.NewFailure(models.LookupFailure, "core.lookup", res.err)
		s.logger.Warn("lookup failed, keeping placeholder",
			zap.String("code", res.code.String()),
			zap.String("store", s.store.ID),
			zap.Error(res.err))
		s.state.Report(fmt.Sprintf("No price found for %s", res.code), failure)
		s.pushStateToUI()
		return
	}

	if s.mode == models.ModeCompare {
		if _, ok := s.list.Get(res.code); ok {
			s.state.SetOffers(res.code.String(), res.offers)
		}
	} else if !s.list.Apply(res.code, res.product) {
		s.logger.Debug("lookup result for removed item", zap.String("code", res.code.String()))
	}
	s.state.ClearError()
	s.pushStateToUI()
}

func (s *ShoppingService) startScanner() {
	if err := s.scanner.Start(s.ctx); err != nil {
		s.state.Report("Scanner unavailable: "+errorCause(err), err)
	} else {
		s.state.Report("Scanning", nil)
	}
	s.pushStateToUI()
}

func (s *ShoppingService) stopScanner(status string) {
	if err := s.scanner.Stop(); err != nil {
		s.logger.Warn("scanner release failed", zap.Error(err))
	}
	s.gate = nil
	s.state.SetStatus(status)
	s.pushStateToUI()
}

func (s *ShoppingService) snapshot() models.Snapshot {
	items := s.list.Items()
	snap := models.Snapshot{
		Mode:      s.mode,
		StoreID:   s.store.ID,
		StoreName: s.store.Name,
		Scanner:   s.scanner.State(),
		Items:     make([]models.LineItem, 0, len(items)),
		Total:     s.list.Total(),
		InFlight:  s.state.InFlight(),
		Status:    s.state.Status(),
		Error:     s.state.GetLastError(),
	}
	if p, ok := s.scanner.Pending(); ok {
		snap.PendingCode = p.Code.String()
	}
	for _, it := range items {
		snap.Items = append(snap.Items, models.LineItem{
			Code:      it.ID.String(),
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
			Image:     it.ImageRef,
			Resolved:  it.Resolved,
		})
	}
	if s.mode == models.ModeCompare {
		codes := make([]string, 0, len(items))
		for _, it := range items {
			codes = append(codes, it.ID.String())
		}
		snap.Comparisons = cart.Compare(codes, s.state.Offers(), lookup.CompareStores())
	}
	return snap
}

func (s *ShoppingService) pushStateToUI() {
	if err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{Snapshot: s.snapshot()}); err != nil {
		s.logger.Warn("error sending state to UI", zap.Error(err))
	}
}

// errorCause drops the operation prefix of a Failure for the status line.
func errorCause(err error) string {
	var failure *models.Failure
	if errors.As(err, &failure) && failure.Err != nil {
		return failure.Err.Error()
	}
	return err.Error()
}
