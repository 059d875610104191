package gallery

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"media-reel/internal/inference"
	"media-reel/internal/logging"
	"media-reel/internal/mediatypes"
	"media-reel/internal/metrics"
	"media-reel/internal/sidecar"
)

// sourceSidecar labels dates taken from a sidecar "date" field.
const sourceSidecar = "sidecar"

// buildRow scans one category. It never fails; problems yield fewer or no
// items.
func (idx *Indexer) buildRow(ctx context.Context, c Category) Row {
	row := Row{Title: c.Title, Items: []Item{}}
	dir := idx.categoryDir(c)

	entries, err := idx.readDir(ctx, dir)
	if err != nil {
		scanFailed(c.Key, dir, err)
		idx.recordRow(c.Key, row)
		return row
	}
	l := newListing(entries)

	overrides, err := idx.loader.Overrides(ctx, filepath.Join(dir, idx.opts.SidecarName))
	if err != nil {
		sidecarFailed(c.Key, err)
	}

	for i, name := range l.media {
		row.Items = append(row.Items, idx.buildItem(ctx, c, dir, i, name, l, overrides))
	}

	slices.SortStableFunc(row.Items, func(a, b Item) int {
		return cmp.Compare(b.DateMs, a.DateMs)
	})

	logging.Debug("Category %s: %d items", c.Key, len(row.Items))
	idx.recordRow(c.Key, row)
	return row
}

func (idx *Indexer) buildItem(ctx context.Context, c Category, dir string, index int, name string, l listing, overrides sidecar.Overrides) Item {
	kind := kindOf(name)
	ov, _ := overrides.Lookup(name)

	derived := Item{
		ID:   fmt.Sprintf("%s-%d", c.Key, index),
		Kind: kind,
		Src:  mediaURL(idx.opts.GalleryURLPrefix, c.Key, name),
	}
	if kind == mediatypes.KindVideo {
		if poster := l.poster(name); poster != "" {
			derived.Poster = mediaURL(idx.opts.GalleryURLPrefix, c.Key, poster)
		}
	}

	source := idx.resolveDate(ctx, &derived, name, filepath.Join(dir, name), ov)
	metrics.InferenceResolutions.WithLabelValues(source).Inc()

	return applyOverride(derived, ov)
}

// resolveDate sets DateMs and the derived Title. The sidecar date wins when it
// parses; otherwise the inference engine decides. It returns the source label.
func (idx *Indexer) resolveDate(ctx context.Context, item *Item, name, path string, ov sidecar.Override) string {
	if ov.Date != "" {
		if t, ok := idx.engine.ParseDate(ov.Date); ok {
			item.DateMs = t.UnixMilli()
			item.Title = idx.engine.FormatDate(t)
			return sourceSidecar
		}
		logging.Debug("Unparseable sidecar date %q for %s", ov.Date, name)
	}

	r := idx.engine.Resolve(ctx, name, path)
	item.DateMs = r.Millis()
	if r.Found() {
		item.Title = idx.engine.FormatDate(r.Time)
	} else {
		item.Title = inference.FallbackTitle(name)
	}
	return string(r.Source)
}

// applyOverride merges sidecar fields into a derived item. The blurb is taken
// from the override when set; the title only when no date resolved, since a
// known date is always the visible title.
func applyOverride(derived Item, ov sidecar.Override) Item {
	out := derived
	if ov.Blurb != "" {
		out.Blurb = ov.Blurb
	}
	if ov.Title != "" && derived.DateMs == 0 {
		out.Title = ov.Title
	}
	return out
}

func (idx *Indexer) recordRow(key string, row Row) {
	var images, videos int
	for _, item := range row.Items {
		switch item.Kind {
		case mediatypes.KindImage:
			images++
		case mediatypes.KindVideo:
			videos++
		}
	}
	metrics.GalleryRowItems.WithLabelValues(key, string(mediatypes.KindImage)).Set(float64(images))
	metrics.GalleryRowItems.WithLabelValues(key, string(mediatypes.KindVideo)).Set(float64(videos))
}
