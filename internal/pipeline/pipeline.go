// Package pipeline orchestrates the evidence tagging flow: extract text,
// detect entities, classify against the clause catalog, and replace the
// document's automatic mappings in the store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clausetag/clausetag/internal/catalog"
	"github.com/clausetag/clausetag/internal/classify"
	"github.com/clausetag/clausetag/internal/detect"
	"github.com/clausetag/clausetag/internal/ingest"
	"github.com/clausetag/clausetag/internal/model"
	"github.com/clausetag/clausetag/internal/store"
)

// Pipeline runs the complete tagging flow for one document at a time
type Pipeline struct {
	detector   *detect.Detector
	classifier *classify.Classifier
	loader     *catalog.Loader
	fetcher    *ingest.Fetcher
	store      store.Store
	logger     *slog.Logger
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration and store
func NewPipeline(cfg *model.Config, st store.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		detector:   detect.NewDetector(),
		classifier: classify.NewClassifier(),
		loader:     catalog.NewLoader(cfg.Catalog, cfg.Cache.Enabled),
		fetcher:    ingest.NewFetcher(cfg.HTTP),
		store:      st,
		logger:     logger,
		config:     cfg,
	}
}

// TagResult summarizes one tagging run
type TagResult struct {
	Report  *model.Report
	Created int
	Status  model.DocumentStatus
	Message string
}

// TagSource tags a single evidence source: a local file path or an
// http(s) URL. The delete-then-insert replacement of the document's
// automatic mappings happens inside the store, so a failure before that
// point leaves prior mappings intact.
func (p *Pipeline) TagSource(ctx context.Context, source string) (*TagResult, error) {
	text, err := p.extract(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", source, err)
	}

	return p.TagText(ctx, source, text)
}

// TagText tags already-extracted document text under the given document ID
func (p *Pipeline) TagText(ctx context.Context, docID, text string) (*TagResult, error) {
	doc := model.Document{
		ID:         docID,
		Source:     docID,
		Status:     model.StatusUploaded,
		Text:       text,
		TextLength: len(text),
	}

	// Empty text is a deliberate short-circuit: no catalog scan, and prior
	// mappings are left alone.
	if text == "" {
		p.logger.Warn("no extractable text", "document", docID)
		return &TagResult{
			Report:  &model.Report{Document: doc, TaggedAt: time.Now().UTC()},
			Status:  model.StatusUploaded,
			Message: "no text extracted; skipping entity detection and auto-tagging",
		}, nil
	}

	cat, err := p.loader.Load(p.config.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	doc.Status = model.StatusProcessing
	p.logger.Info("tagging started", "document", docID, "text_length", len(text), "clauses", cat.Len())

	entities := p.detector.Detect(text)
	doc.Entities = entities

	mappings := p.classifier.Classify(text, entities, cat.Clauses())
	for i := range mappings {
		mappings[i].DocumentID = docID
	}

	created, err := p.store.ReplaceAuto(docID, mappings)
	if err != nil {
		return nil, fmt.Errorf("store mappings: %w", err)
	}

	now := time.Now().UTC()
	doc.ProcessedAt = &now
	if created > 0 {
		doc.Status = model.StatusTagged
	} else {
		doc.Status = model.StatusUploaded
	}

	p.logger.Info("tagging finished",
		"document", docID,
		"entities", len(entities),
		"mappings", created,
		"status", string(doc.Status))

	stored, err := p.store.Mappings(docID)
	if err != nil && err != store.ErrNotFound {
		return nil, fmt.Errorf("read back mappings: %w", err)
	}

	return &TagResult{
		Report: &model.Report{
			Document:  doc,
			TaggedAt:  now,
			Entities:  entities,
			Mappings:  stored,
			ClauseSet: cat.Len(),
		},
		Created: created,
		Status:  doc.Status,
		Message: fmt.Sprintf("detected %d entities, created %d clause mappings", len(entities), created),
	}, nil
}

// extract resolves a source into text, fetching remotely when it looks like
// a URL
func (p *Pipeline) extract(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		result, err := p.fetcher.Fetch(ctx, source)
		if err != nil {
			return "", err
		}
		return result.Text, nil
	}
	return ingest.ExtractFile(source)
}
