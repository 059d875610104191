package gallery

import (
	"context"
	"path/filepath"

	"media-reel/internal/logging"
	"media-reel/internal/mediatypes"
	"media-reel/internal/metrics"
)

// heroScope labels hero failures in metrics.
const heroScope = "hero"

// resolveHero picks the banner: the sidecar's "select" when it names a media
// file in the directory, else the first video, else the first image.
func (idx *Indexer) resolveHero(ctx context.Context) *Hero {
	dir := idx.heroDir()

	entries, err := idx.readDir(ctx, dir)
	if err != nil {
		scanFailed(heroScope, dir, err)
		return nil
	}
	l := newListing(entries)

	meta, err := idx.loader.HeroMeta(ctx, filepath.Join(dir, idx.opts.SidecarName))
	if err != nil {
		sidecarFailed(heroScope, err)
	}

	chosen := ""
	switch {
	case l.has(meta.Select):
		chosen = meta.Select
	case l.first(mediatypes.KindVideo) != "":
		chosen = l.first(mediatypes.KindVideo)
	default:
		chosen = l.first(mediatypes.KindImage)
	}
	if meta.Select != "" && chosen != meta.Select {
		logging.Debug("Hero select %q not found in %s, using %q", meta.Select, dir, chosen)
	}
	if chosen == "" {
		return nil
	}

	hero := &Hero{
		Type: kindOf(chosen),
		Src:  mediaURL(idx.opts.HeroURLPrefix, chosen),
		Fit:  meta.NormalizedFit(),
	}
	if hero.Type == mediatypes.KindVideo {
		if poster := l.poster(chosen); poster != "" {
			hero.Poster = mediaURL(idx.opts.HeroURLPrefix, poster)
		}
	}
	return hero
}

func recordHero(hero *Hero) {
	for _, kind := range []mediatypes.Kind{mediatypes.KindImage, mediatypes.KindVideo} {
		v := 0.0
		if hero != nil && hero.Type == kind {
			v = 1
		}
		metrics.GalleryHeroSelected.WithLabelValues(string(kind)).Set(v)
	}
}
