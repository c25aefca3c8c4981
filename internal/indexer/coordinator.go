// Package indexer coordinates one search index build: it owns the
// authoritative index store, reacts to document lifecycle events, fans
// feeding out to worker partials and writes the snapshot and browser
// artifacts when the build ends.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/doctree"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/domain"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/language"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/shard"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/snapshot"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/tracing"
)

type Option func(*Coordinator)

// WithDomains sets the cross-reference domains read when the index is frozen.
func WithDomains(domains ...domain.Domain) Option {
	return func(c *Coordinator) { c.domains = append(c.domains, domains...) }
}

// WithMetrics reports build activity to m. Without it the coordinator uses a
// private registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// Summary describes the artifacts written by Dump.
type Summary struct {
	Docs       int
	Terms      int
	TitleTerms int
	Format     string
	EnvVersion string
}

type Coordinator struct {
	mu        sync.Mutex
	cfg       config.IndexConfig
	lang      language.Ruleset
	store     *index.Store
	artifacts snapshot.Store
	format    snapshot.Format
	domains   []domain.Domain
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewCoordinator resolves the configured language and creates an empty
// authoritative store. Artifacts are read from and written to artifacts.
func NewCoordinator(cfg config.IndexConfig, registry *language.Registry, artifacts snapshot.Store, opts ...Option) (*Coordinator, error) {
	format, err := snapshot.Lookup(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("selecting snapshot format: %w", err)
	}
	if format == snapshot.JS {
		return nil, fmt.Errorf("snapshot format %q cannot be loaded back: %w", cfg.Format, apperrors.ErrInvalidInput)
	}
	c := &Coordinator{
		cfg:       cfg,
		lang:      registry.Resolve(cfg.Language),
		artifacts: artifacts,
		format:    format,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.New(prometheus.NewRegistry())
	}
	c.logger = slog.Default().With("component", "coordinator", "lang", c.lang.Lang())
	c.store = c.newStore()
	c.logger.Info("search index coordinator ready",
		"language", c.lang.Name(),
		"requested", cfg.Language,
		"format", format.Name(),
		"domains", len(c.domains),
	)
	return c, nil
}

func (c *Coordinator) newStore() *index.Store {
	return index.NewStore(c.lang, index.Options{
		EnvVersion:    c.cfg.EnvVersion,
		Domains:       c.domains,
		StemCacheSize: c.cfg.StemCacheSize,
	})
}

// Store returns the authoritative store.
func (c *Coordinator) Store() *index.Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store
}

func (c *Coordinator) Language() language.Ruleset { return c.lang }

// LoadPrevious restores the snapshot of the previous build. A missing,
// unreadable, outdated or damaged snapshot is logged and the build starts
// from an empty index; only unexpected failures are returned.
func (c *Coordinator) LoadPrevious(ctx context.Context) error {
	_, end := c.phase(ctx, "load")
	defer end()

	frozen, err := snapshot.Fetch(ctx, c.artifacts, c.cfg.SnapshotName, c.format)
	if err == nil {
		err = c.Store().Load(frozen)
	}
	switch {
	case err == nil:
		c.metrics.SnapshotLoadsTotal.WithLabelValues("loaded").Inc()
		c.logger.Info("previous index loaded", "docs", len(frozen.Docnames))
		return nil
	case errors.Is(err, apperrors.ErrNotExist):
		c.metrics.SnapshotLoadsTotal.WithLabelValues("missing").Inc()
		c.logger.Info("no previous index, starting cold", "snapshot", c.cfg.SnapshotName)
		return nil
	case errors.Is(err, apperrors.ErrFormat):
		c.metrics.SnapshotLoadsTotal.WithLabelValues("rejected").Inc()
		c.logger.Warn("previous index rejected, starting cold", "error", err)
		return nil
	case apperrors.Recoverable(err):
		c.metrics.SnapshotLoadsTotal.WithLabelValues("error").Inc()
		c.logger.Warn("previous index unreadable, starting cold", "error", err)
		return nil
	default:
		c.metrics.SnapshotLoadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("loading previous index: %w", err)
	}
}

// DocumentPurged drops every contribution of docname. It reports whether the
// document was indexed.
func (c *Coordinator) DocumentPurged(docname string) bool {
	known := c.Store().Remove(docname)
	if known {
		c.metrics.DocsPurgedTotal.Inc()
	}
	c.logger.Debug("document purged", "docname", docname, "known", known)
	return known
}

// ParallelResultsReady merges a finished worker partial into the
// authoritative store.
func (c *Coordinator) ParallelResultsReady(partial *index.Store) error {
	if err := c.Store().Merge(partial); err != nil {
		status := "error"
		if errors.Is(err, apperrors.ErrMergeConflict) {
			status = "conflict"
		}
		c.metrics.MergesTotal.WithLabelValues(status).Inc()
		return err
	}
	c.metrics.MergesTotal.WithLabelValues("ok").Inc()
	c.recordStemStats(partial.StemCache())
	return nil
}

// Feed indexes one document into the authoritative store.
func (c *Coordinator) Feed(doc *doctree.Document) error {
	if err := c.Store().Feed(doc.Docname, doc.Filename, doc.Title, doc.Tree); err != nil {
		return fmt.Errorf("feeding %s: %w", doc.Docname, err)
	}
	c.metrics.DocsFedTotal.Inc()
	return nil
}

// Prune drops every document not listed in keep.
func (c *Coordinator) Prune(keep []string) {
	before := c.Store().Len()
	c.Store().Prune(keep)
	if removed := before - c.Store().Len(); removed > 0 {
		c.metrics.DocsPurgedTotal.Add(float64(removed))
	}
}

// Update brings the store in line with docs: documents missing from docs are
// pruned, and documents listed in outdated or not yet indexed are re-fed. A
// nil outdated re-feeds everything.
func (c *Coordinator) Update(ctx context.Context, docs []*doctree.Document, outdated []string, workers int) error {
	keep := make([]string, 0, len(docs))
	for _, d := range docs {
		keep = append(keep, d.Docname)
	}
	c.Prune(keep)

	var stale map[string]struct{}
	if outdated != nil {
		stale = make(map[string]struct{}, len(outdated))
		for _, d := range outdated {
			stale[d] = struct{}{}
		}
	}
	st := c.Store()
	var feed []*doctree.Document
	for _, d := range docs {
		_, isStale := stale[d.Docname]
		_, indexed := st.Title(d.Docname)
		if outdated == nil || isStale || !indexed {
			st.Remove(d.Docname)
			feed = append(feed, d)
		}
	}
	c.logger.Info("updating index", "docs", len(docs), "refeed", len(feed), "workers", workers)
	return c.BuildParallel(ctx, feed, workers)
}

// BuildParallel feeds docs through workers isolated partial stores and
// merges them once every worker has finished. A worker that fails is
// discarded whole; the partials of the others are merged in worker order.
// The returned error joins the failures of all workers.
func (c *Coordinator) BuildParallel(ctx context.Context, docs []*doctree.Document, workers int) error {
	ctx, end := c.phase(ctx, "feed")
	defer end()

	if workers < 1 {
		workers = 1
	}
	parts := shard.Partition(docs, workers)
	partials := make([]*index.Store, len(parts))
	errs := make([]error, len(parts))
	base := c.Store()

	// a plain Group: one failing worker must not cancel its siblings, whose
	// partials are still merged
	var g errgroup.Group
	for i, part := range parts {
		g.Go(func() error {
			partial := base.NewPartial()
			for _, d := range part {
				if err := ctx.Err(); err != nil {
					errs[i] = fmt.Errorf("worker %d: %w", i, err)
					return errs[i]
				}
				if err := partial.Feed(d.Docname, d.Filename, d.Title, d.Tree); err != nil {
					errs[i] = fmt.Errorf("worker %d: feeding %s: %w", i, d.Docname, err)
					return errs[i]
				}
				c.metrics.DocsFedTotal.Inc()
			}
			partials[i] = partial
			return nil
		})
	}
	// errors are kept per worker in errs; Wait is only the barrier
	_ = g.Wait()

	_, endMerge := c.phase(ctx, "merge")
	defer endMerge()
	for i, partial := range partials {
		if errs[i] != nil {
			c.metrics.MergesTotal.WithLabelValues("discarded").Inc()
			c.logger.Warn("discarding failed worker", "worker", i, "error", errs[i])
			continue
		}
		if err := c.ParallelResultsReady(partial); err != nil {
			errs[i] = fmt.Errorf("merging worker %d: %w", i, err)
		}
	}
	return errors.Join(errs...)
}

// Dump freezes the store and writes the resumable snapshot, the browser index
// and language_data.js. Any write failure fails the build.
func (c *Coordinator) Dump(ctx context.Context) (Summary, error) {
	ctx, end := c.phase(ctx, "dump")
	defer end()

	st := c.Store()
	frozen := st.Freeze()
	c.metrics.IndexDocuments.Set(float64(len(frozen.Docnames)))
	c.metrics.IndexTerms.WithLabelValues("body").Set(float64(len(frozen.Terms)))
	c.metrics.IndexTerms.WithLabelValues("title").Set(float64(len(frozen.TitleTerms)))
	c.recordStemStats(st.StemCache())

	if err := c.save(ctx, c.cfg.SnapshotName, c.format, frozen); err != nil {
		return Summary{}, err
	}
	if err := c.save(ctx, c.cfg.ArtifactName, snapshot.JS, frozen); err != nil {
		return Summary{}, err
	}
	if err := c.writeLanguageData(ctx); err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Docs:       len(frozen.Docnames),
		Terms:      len(frozen.Terms),
		TitleTerms: len(frozen.TitleTerms),
		Format:     c.format.Name(),
		EnvVersion: frozen.EnvVersion,
	}
	c.logger.Info("search index written",
		"docs", sum.Docs,
		"terms", sum.Terms,
		"title_terms", sum.TitleTerms,
		"snapshot", c.cfg.SnapshotName,
		"artifact", c.cfg.ArtifactName,
	)
	return sum, nil
}

func (c *Coordinator) save(ctx context.Context, name string, format snapshot.Format, frozen *index.Frozen) error {
	if err := snapshot.Save(ctx, c.artifacts, name, format, frozen); err != nil {
		c.metrics.SnapshotWritesTotal.WithLabelValues(format.Name(), "error").Inc()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	c.metrics.SnapshotWritesTotal.WithLabelValues(format.Name(), "ok").Inc()
	return nil
}

func (c *Coordinator) writeLanguageData(ctx context.Context) error {
	data, err := c.RenderLanguageData()
	if err != nil {
		return err
	}
	if err := c.artifacts.Put(ctx, c.cfg.LanguageDataName, data); err != nil {
		return fmt.Errorf("writing %s: %w", c.cfg.LanguageDataName, err)
	}
	for _, path := range language.StemmerRawFiles(c.lang, c.cfg.JSStemmerDir) {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w: %w", path, apperrors.ErrSnapshotIO, err)
		}
		if err := c.artifacts.Put(ctx, filepath.Base(path), src); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// Destroy discards the authoritative store and its stem cache. The
// coordinator starts over from an empty index.
func (c *Coordinator) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.StemCache().Purge()
	c.store = c.newStore()
	c.logger.Debug("index destroyed")
}

func (c *Coordinator) recordStemStats(cache *index.StemCache) {
	hits, misses := cache.Stats()
	c.metrics.StemCacheHitsTotal.Add(float64(hits))
	c.metrics.StemCacheMissTotal.Add(float64(misses))
	cache.Purge()
}

// phase starts a child span of the build and returns a func that ends it and
// records its duration.
func (c *Coordinator) phase(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := tracing.StartChildSpan(ctx, name)
	return ctx, func() {
		d := span.End()
		c.metrics.BuildDuration.WithLabelValues(name).Observe(d.Seconds())
	}
}
