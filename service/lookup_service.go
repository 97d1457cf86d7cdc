package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/gst-bank-api/client"
	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/utils"
)

//go:generate mockgen -destination=mocks/mock_fetcher.go -package=mocks -source=lookup_service.go GSTFetcher,BankFetcher

// GSTFetcher fetches normalized taxpayer details for a valid GSTIN.
type GSTFetcher interface {
	FetchGSTDetails(ctx context.Context, gstin string) (*dto.GSTDetails, error)
}

// BankFetcher fetches normalized branch details for a valid IFSC code.
type BankFetcher interface {
	FetchBankDetails(ctx context.Context, ifsc string) (*dto.BankDetails, error)
}

var (
	ErrEmptyBatch    = errors.New("empty batch")
	ErrBatchTooLarge = errors.New("batch too large")
)

const (
	bulkInvalidGSTINMessage = "Invalid GSTIN format"
	bulkInvalidIFSCMessage  = "Invalid IFSC format"
)

// LookupService validates identifiers and resolves them through the
// provider clients. It holds no per-request state.
type LookupService struct {
	gst          GSTFetcher
	bank         BankFetcher
	maxBatchSize int
	concurrency  int
	log          *zap.Logger
}

type LookupOption func(*LookupService)

// WithMaxBatchSize caps the number of identifiers in a bulk request.
func WithMaxBatchSize(n int) LookupOption {
	return func(s *LookupService) { s.maxBatchSize = n }
}

// WithBatchConcurrency sets how many batch items are fetched at once.
// 1 processes items strictly one after another.
func WithBatchConcurrency(n int) LookupOption {
	return func(s *LookupService) { s.concurrency = n }
}

func WithLookupLogger(l *zap.Logger) LookupOption {
	return func(s *LookupService) { s.log = l }
}

func NewLookupService(gst GSTFetcher, bank BankFetcher, opts ...LookupOption) *LookupService {
	s := &LookupService{
		gst:          gst,
		bank:         bank,
		maxBatchSize: 10,
		concurrency:  1,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}
	return s
}

// MaxBatchSize returns the configured bulk cap.
func (s *LookupService) MaxBatchSize() int {
	return s.maxBatchSize
}

// LookupGST normalizes and validates gstin, then fetches its details.
// Validation failures are returned as *utils.ValidationError before any
// network call; provider failures as *client.FetchError.
func (s *LookupService) LookupGST(ctx context.Context, gstin string) (*dto.GSTDetails, error) {
	gstin = utils.NormalizeIdentifier(gstin)
	if err := utils.ValidateGSTIN(gstin); err != nil {
		return nil, err
	}
	return s.gst.FetchGSTDetails(ctx, gstin)
}

// LookupBank normalizes and validates ifsc, then fetches its details.
func (s *LookupService) LookupBank(ctx context.Context, ifsc string) (*dto.BankDetails, error) {
	ifsc = utils.NormalizeIdentifier(ifsc)
	if err := utils.ValidateIFSC(ifsc); err != nil {
		return nil, err
	}
	return s.bank.FetchBankDetails(ctx, ifsc)
}

func (s *LookupService) checkBatch(n int) error {
	if n == 0 {
		return ErrEmptyBatch
	}
	if n > s.maxBatchSize {
		return fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, n, s.maxBatchSize)
	}
	return nil
}

// BulkGST looks up every GSTIN in the list. Item failures are reported in
// the item's own result; the returned error is only set for an empty or
// oversized batch. Results keep the input order.
func (s *LookupService) BulkGST(ctx context.Context, gstins []string) ([]dto.GSTBulkResult, error) {
	if err := s.checkBatch(len(gstins)); err != nil {
		return nil, err
	}

	results := make([]dto.GSTBulkResult, len(gstins))
	s.forEach(ctx, len(gstins), func(ctx context.Context, i int) {
		results[i] = s.gstItem(ctx, gstins[i])
	})
	return results, nil
}

// BulkBank is BulkGST for IFSC codes.
func (s *LookupService) BulkBank(ctx context.Context, codes []string) ([]dto.BankBulkResult, error) {
	if err := s.checkBatch(len(codes)); err != nil {
		return nil, err
	}

	results := make([]dto.BankBulkResult, len(codes))
	s.forEach(ctx, len(codes), func(ctx context.Context, i int) {
		results[i] = s.bankItem(ctx, codes[i])
	})
	return results, nil
}

func (s *LookupService) gstItem(ctx context.Context, raw string) dto.GSTBulkResult {
	gstin := utils.NormalizeIdentifier(raw)
	if err := utils.ValidateGSTIN(gstin); err != nil {
		return dto.GSTBulkResult{GSTIN: gstin, Message: bulkInvalidGSTINMessage}
	}

	details, err := s.gst.FetchGSTDetails(ctx, gstin)
	if err != nil {
		return dto.GSTBulkResult{GSTIN: gstin, Valid: true, Message: s.itemMessage(err)}
	}
	return dto.GSTBulkResult{
		GSTIN:   gstin,
		Valid:   true,
		Success: true,
		Message: client.GSTSuccessMessage,
		Data:    details,
	}
}

func (s *LookupService) bankItem(ctx context.Context, raw string) dto.BankBulkResult {
	ifsc := utils.NormalizeIdentifier(raw)
	if err := utils.ValidateIFSC(ifsc); err != nil {
		return dto.BankBulkResult{IFSC: ifsc, Message: bulkInvalidIFSCMessage}
	}

	details, err := s.bank.FetchBankDetails(ctx, ifsc)
	if err != nil {
		return dto.BankBulkResult{IFSC: ifsc, Valid: true, Message: s.itemMessage(err)}
	}
	return dto.BankBulkResult{
		IFSC:    ifsc,
		Valid:   true,
		Success: true,
		Message: client.BankSuccessMessage,
		Data:    details,
	}
}

// itemMessage turns a fetch failure into the per-item message. Anything
// that is not a FetchError is logged and reported generically.
func (s *LookupService) itemMessage(err error) string {
	var fe *client.FetchError
	if errors.As(err, &fe) {
		return fe.Message
	}
	s.log.Error("unexpected lookup failure", zap.Error(err))
	return "Internal server error"
}

// forEach runs fn for indexes 0..n-1 with at most s.concurrency in flight.
// fn writes into its own slot, so output order never depends on timing.
func (s *LookupService) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if s.concurrency == 1 {
		for i := 0; i < n; i++ {
			fn(ctx, i)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(gctx, i)
			return nil
		})
	}
	_ = g.Wait()
}
