// Package service orchestrates ingestion: tokenize input, categorize via the
// remote backend (or the rule-based fallback), and install the result into
// the checklist store.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/checklister/internal/categorize"
	"github.com/vbonduro/checklister/internal/checklist"
	"github.com/vbonduro/checklister/internal/domain"
	"github.com/vbonduro/checklister/internal/metrics"
	"github.com/vbonduro/checklister/internal/ocr"
	"github.com/vbonduro/checklister/internal/parse"
)

var (
	ErrEmptyInput     = errors.New("no items or urls to categorize")
	ErrOCRUnavailable = errors.New("ocr backend not configured")
)

type ListService struct {
	store     *checklist.Store
	remote    categorize.Categorizer // nil when no AI backend is configured
	backend   string                 // metrics label for the remote backend
	fallback  *categorize.RuleCategorizer
	extractor ocr.Extractor // nil when image ingestion is disabled
	logger    *slog.Logger
}

func NewListService(
	store *checklist.Store,
	remote categorize.Categorizer,
	backend string,
	fallback *categorize.RuleCategorizer,
	extractor ocr.Extractor,
	logger *slog.Logger,
) *ListService {
	return &ListService{
		store:     store,
		remote:    remote,
		backend:   backend,
		fallback:  fallback,
		extractor: extractor,
		logger:    logger,
	}
}

// IngestResult is the outcome of a categorization run. A non-empty Notice
// means nothing was found (the checklist is left untouched).
type IngestResult struct {
	Groups []domain.CategoryGroup `json:"groups"`
	Notice string                 `json:"notice,omitempty"`
}

// IngestText tokenizes pasted text, categorizes it, and replaces the current
// checklist with the result. Recipe URLs found in the text are forwarded to
// the remote backend rather than tokenized.
func (s *ListService) IngestText(ctx context.Context, text string) (*IngestResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	urls, remainder := parse.ExtractURLs(text)
	items := parse.SplitItems(remainder)
	if len(items) == 0 && len(urls) == 0 {
		return nil, ErrEmptyInput
	}
	s.logger.Info("ingest started", "items", len(items), "urls", len(urls))

	result, err := s.runCategorize(ctx, categorize.Request{Items: items, URLs: urls})
	if err != nil {
		return nil, err
	}
	if result.Notice != "" {
		s.logger.Info("ingest produced no items", "notice", result.Notice)
		return &IngestResult{Notice: result.Notice}, nil
	}

	s.store.ReplaceAll(result.Items)
	metrics.ItemsIngested.Add(float64(len(result.Items)))
	s.logger.Info("ingest complete", "items_stored", len(result.Items))
	return &IngestResult{Groups: s.store.GroupedView()}, nil
}

// IngestImage extracts text from a photographed list, then follows the text
// ingestion path.
func (s *ListService) IngestImage(ctx context.Context, imageData []byte, mimeType string) (*IngestResult, error) {
	if s.extractor == nil {
		return nil, ErrOCRUnavailable
	}

	metrics.OCRExtractions.Inc()
	s.logger.Info("ocr extraction started", "mime_type", mimeType, "bytes", len(imageData))
	text, err := s.extractor.Extract(ctx, bytes.NewReader(imageData), mimeType, func(fraction float64) {
		s.logger.Debug("ocr progress", "fraction", fraction)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	s.logger.Info("ocr extraction complete", "chars", len(text))

	return s.IngestText(ctx, text)
}

// runCategorize prefers the remote backend and falls back to the local rule
// table on failure. There is no retry: a remote error recovers immediately
// and synchronously. URL-only requests cannot be recovered locally because
// the fallback has no way to fetch pages.
func (s *ListService) runCategorize(ctx context.Context, req categorize.Request) (*categorize.Result, error) {
	if s.remote == nil {
		metrics.CategorizeRequests.WithLabelValues("rules").Inc()
		return s.fallback.Categorize(ctx, req)
	}

	metrics.CategorizeRequests.WithLabelValues(s.backend).Inc()
	result, err := s.remote.Categorize(ctx, req)
	if err == nil {
		return result, nil
	}

	s.logger.Warn("remote categorization failed, using rule fallback", "backend", s.backend, "error", err)
	metrics.CategorizeFallbacks.Inc()
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("failed to process urls: %w", err)
	}
	metrics.CategorizeRequests.WithLabelValues("rules").Inc()
	return s.fallback.Categorize(ctx, req)
}

// ToggleResult augments the store's toggle outcome for API consumers.
type ToggleResult struct {
	PendingAmount bool                 `json:"pending_amount"`
	Item          domain.ChecklistItem `json:"item"`
}

func (s *ListService) ToggleCheck(id string) (*ToggleResult, error) {
	res, err := s.store.ToggleCheck(id)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{PendingAmount: res.PendingAmount, Item: res.Item}, nil
}

// ConfirmAmount checks the item with the given amount. The returned bool is
// true exactly when the whole list transitioned into the all-checked state.
func (s *ListService) ConfirmAmount(id string, amount float64) (bool, error) {
	completed, err := s.store.ConfirmAmount(id, amount)
	if err != nil {
		return false, err
	}
	if completed {
		s.logger.Info("checklist completed", "items", s.store.Progress().Total)
	}
	return completed, nil
}

func (s *ListService) MoveItems(ids []string, category string) int {
	return s.store.MoveMany(ids, category)
}

func (s *ListService) DeleteItems(ids []string) int {
	return s.store.DeleteMany(ids)
}

func (s *ListService) GroupedView() []domain.CategoryGroup {
	return s.store.GroupedView()
}

func (s *ListService) Progress() domain.Progress {
	return s.store.Progress()
}

func (s *ListService) Reset() {
	s.store.Reset()
	s.logger.Info("checklist reset")
}
