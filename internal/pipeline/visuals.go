package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"lingoreel/internal/config"
	"lingoreel/internal/services"
	"lingoreel/internal/timeline"
	"lingoreel/internal/visual"
)

// imageSet is the per-cue image choice. paths aligns with cues; an empty
// entry means a solid background.
type imageSet struct {
	paths  []string
	counts ImageCounts
}

// resolveImages grounds every primary cue on a bounded pool. Secondary cues
// reuse the image of the primary cue they follow. Only per-sentence
// backgrounds search at all.
func (r *Runner) resolveImages(ctx context.Context, tl timeline.Timeline) imageSet {
	set := imageSet{paths: make([]string, len(tl.Cues))}
	if r.images == nil || r.settings.Background != config.BackgroundPerSentence {
		return set
	}
	ctx = services.WithStage(ctx, StageImages)

	var primaries []int
	for i, c := range tl.Cues {
		if c.IsPrimary {
			primaries = append(primaries, i)
		}
	}
	done := r.begin(ctx, StageImages, len(primaries))
	defer done()

	resolutions := make([]visual.Resolution, len(tl.Cues))
	track := r.tracker(ctx, StageImages, len(primaries))
	var g errgroup.Group
	g.SetLimit(max(r.settings.ImageWorkers, 1))
	for _, idx := range primaries {
		cue := tl.Cues[idx]
		g.Go(func() error {
			resolutions[idx] = r.images.Resolve(services.WithCueIndex(ctx, idx), cue.Text, cue.Lang, cue.Tags)
			track.step()
			return nil
		})
	}
	_ = g.Wait()

	for i, owner := range tl.Primaries() {
		if owner < 0 {
			continue
		}
		if img, ok := resolutions[owner].First(); ok {
			set.paths[i] = img.Path
		}
	}
	for _, idx := range primaries {
		res := resolutions[idx]
		switch res.Status {
		case visual.StatusResolved:
			set.counts.Resolved++
		case visual.StatusPartial:
			set.counts.Partial++
		default:
			set.counts.Missing++
		}
		for _, img := range res.Images {
			if img.Cached {
				set.counts.Cached++
			}
		}
	}
	return set
}
