package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rgonek/wp-tiptap-converter/document"
	"github.com/rgonek/wp-tiptap-converter/htmlconverter"
	"github.com/rgonek/wp-tiptap-converter/urlmap"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Config configures a Runner.
type Config struct {
	Workers    int
	LinkTarget string
	Rewrites   *urlmap.Table
}

func (c Config) applyDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	return c
}

// Runner converts items with one converter per kind. Posts never contain
// tables; pages may.
type Runner struct {
	converters map[Kind]*htmlconverter.Converter
	workers    int
	log        *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards all records.
func NewRunner(config Config, log *slog.Logger) (*Runner, error) {
	cfg := config.applyDefaults()
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	presets := map[Kind]htmlconverter.BlockSet{
		KindPost: htmlconverter.PostBlocks,
		KindPage: htmlconverter.PageBlocks,
	}
	converters := make(map[Kind]*htmlconverter.Converter, len(presets))
	for kind, blocks := range presets {
		conv, err := htmlconverter.New(htmlconverter.Config{
			Blocks:     blocks,
			LinkTarget: cfg.LinkTarget,
			Rewrites:   cfg.Rewrites,
		})
		if err != nil {
			return nil, fmt.Errorf("%s converter: %w", kind, err)
		}
		converters[kind] = conv
	}

	return &Runner{
		converters: converters,
		workers:    cfg.Workers,
		log:        log,
	}, nil
}

// Run converts items concurrently and returns their outputs in input order.
// The first failing item stops the run; cancellation is honoured between
// items.
func (r *Runner) Run(ctx context.Context, items []Item) ([]Output, error) {
	outputs := make([]Output, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.Convert(item)
			if err != nil {
				return fmt.Errorf("item %d: %w", item.ID, err)
			}
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.log.Info("migration finished", "items", len(items))
	return outputs, nil
}

// Convert converts a single item.
func (r *Runner) Convert(item Item) (Output, error) {
	conv, ok := r.converters[item.Kind]
	if !ok {
		return Output{}, fmt.Errorf("unknown kind %q", item.Kind)
	}

	result := conv.Convert(item.Content)
	if err := document.Validate(result.Doc); err != nil {
		return Output{}, fmt.Errorf("invalid document: %w", err)
	}

	warnings := result.Warnings
	if item.Attachments > 0 && len(result.Images) == 0 {
		warnings = append(warnings, document.Warning{
			Type:    document.WarningMissingImages,
			Message: fmt.Sprintf("%d attachments recorded but no images found", item.Attachments),
		})
	}

	log := r.log.With("item_id", item.ID, "kind", item.Kind)
	for _, w := range warnings {
		log.Warn(w.Message, "warning", w.Type, "node_type", w.NodeType)
	}
	log.Debug("converted item", "blocks", len(result.Doc.Content), "images", len(result.Images))

	return Output{
		ID:       item.ID,
		Kind:     item.Kind,
		Title:    htmlconverter.DecodeEntities(item.Title),
		Content:  result.Doc,
		Images:   result.Images,
		Warnings: warnings,
	}, nil
}
