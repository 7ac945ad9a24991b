package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotImage is returned for an image file whose content is not an image.
var ErrNotImage = errors.New("not an image")

// DefaultConcurrency bounds how many items resolve at once.
const DefaultConcurrency = 8

// Entry is a resolved carousel image.
type Entry struct {
	Source  string `json:"source"`
	Caption string `json:"caption"`
}

// Loader resolves manifest items against an asset file system.
type Loader struct {
	// FS holds the images and caption files.
	FS fs.FS
	// BaseURL is prefixed to image paths to form Entry.Source.
	BaseURL string
	// Label prefixes the default caption, e.g. "Game" gives "Game 3".
	Label string
	// Prefix and Ext describe the prefix_N.ext naming used by LoadCount.
	Prefix string
	Ext    string
	// Concurrency bounds parallel resolution; DefaultConcurrency if zero.
	Concurrency int
	Logger      *zap.Logger
	// OnFailure, if set, is called for every skipped item.
	OnFailure func(item Item, err error)
}

type resolution struct {
	item  Item
	entry Entry
	err   error
}

// LoadAll resolves every item in the manifest and returns the ones that
// resolved, in manifest order. An item whose image or declared caption
// fails is skipped and logged; it is never retried. The only error returned
// is the context's.
func (l *Loader) LoadAll(ctx context.Context, m Manifest) ([]Entry, error) {
	results, err := l.resolveAll(ctx, m)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		if r.err == nil {
			entries = append(entries, r.entry)
		}
	}
	return entries, nil
}

// LoadCount resolves Prefix_1.Ext through Prefix_count.Ext.
func (l *Loader) LoadCount(ctx context.Context, count int) ([]Entry, error) {
	return l.LoadAll(ctx, Enumerate(l.Prefix, l.Ext, count, false))
}

// Resolved returns the subset of m whose items currently resolve.
func (l *Loader) Resolved(ctx context.Context, m Manifest) (Manifest, error) {
	results, err := l.resolveAll(ctx, m)
	if err != nil {
		return Manifest{}, err
	}
	out := Manifest{Items: make([]Item, 0, len(results))}
	for _, r := range results {
		if r.err == nil {
			out.Items = append(out.Items, r.item)
		}
	}
	return out, nil
}

func (l *Loader) resolveAll(ctx context.Context, m Manifest) ([]resolution, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := l.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]resolution, len(m.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range m.Items {
		i, item := i, item // per-iteration copies (pre-Go 1.22 loop semantics)
		if item.Index == 0 {
			item.Index = i + 1
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := l.resolve(item)
			results[i] = resolution{item: item, entry: entry, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.err == nil {
			continue
		}
		logger.Warn("Skipping carousel image",
			zap.Int("index", r.item.Index),
			zap.String("image", r.item.Image),
			zap.Error(r.err))
		if l.OnFailure != nil {
			l.OnFailure(r.item, r.err)
		}
	}
	return results, nil
}

func (l *Loader) resolve(item Item) (Entry, error) {
	f, err := l.FS.Open(item.Image)
	if err != nil {
		return Entry{}, fmt.Errorf("open image: %w", err)
	}
	mt, err := mimetype.DetectReader(f)
	f.Close()
	if err != nil {
		return Entry{}, fmt.Errorf("sniff image: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return Entry{}, fmt.Errorf("%s is %s: %w", item.Image, mt.String(), ErrNotImage)
	}

	caption := strings.TrimSpace(l.Label + fmt.Sprintf(" %d", item.Index))
	if item.Caption != "" {
		data, err := fs.ReadFile(l.FS, item.Caption)
		if err != nil {
			return Entry{}, fmt.Errorf("read caption: %w", err)
		}
		caption = strings.TrimSpace(string(data))
	}

	return Entry{
		Source:  path.Join("/", l.BaseURL, item.Image),
		Caption: caption,
	}, nil
}
