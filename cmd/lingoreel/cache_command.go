package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lingoreel/internal/artifactcache"
	"lingoreel/internal/config"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the speech and image cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache usage per namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lock, err := artifactcache.AcquireShared(cfg.Paths.CacheDir)
			if err != nil {
				return cacheBusy(err)
			}
			defer lock.Release()
			cache, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer cache.Close()

			stats, err := cache.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache: %s\n", cache.Dir())
			if len(stats) == 0 {
				fmt.Fprintln(out, "Cached artifacts: none")
				return nil
			}
			rows := make([][]string, 0, len(stats)+1)
			var entries int
			var total int64
			for _, st := range stats {
				entries += st.Entries
				total += st.Bytes
				rows = append(rows, []string{
					st.Namespace,
					strconv.Itoa(st.Entries),
					humanize.Bytes(uint64(max(st.Bytes, 0))),
					humanTime(st.Oldest),
					humanTime(st.LastUsed),
				})
			}
			rows = append(rows, []string{"total", strconv.Itoa(entries), humanize.Bytes(uint64(max(total, 0))), "", ""})
			fmt.Fprintln(out, renderTable(
				[]string{"Namespace", "Entries", "Size", "Oldest", "Last used"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
				0,
			))
			return nil
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached artifacts not used recently",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return errors.New("--older-than must be positive")
			}
			return withExclusiveCache(ctx, cmd, func(cache *artifactcache.Cache) error {
				res, err := cache.Prune(cmd.Context(), olderThan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d artifacts (%s) unused for %s\n",
					res.Removed, humanize.Bytes(uint64(max(res.Bytes, 0))), olderThan)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Remove artifacts not used within this duration")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withExclusiveCache(ctx, cmd, func(cache *artifactcache.Cache) error {
				res, err := cache.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d artifacts (%s)\n", res.Removed, humanize.Bytes(uint64(max(res.Bytes, 0))))
				return nil
			})
		},
	}
}

// withExclusiveCache runs fn while no render holds the cache.
func withExclusiveCache(ctx *commandContext, cmd *cobra.Command, fn func(*artifactcache.Cache) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := artifactcache.AcquireExclusive(cfg.Paths.CacheDir)
	if err != nil {
		return cacheBusy(err)
	}
	defer lock.Release()

	cache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer cache.Close()
	return fn(cache)
}

func openCache(ctx *commandContext, cfg *config.Config) (*artifactcache.Cache, error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return artifactcache.Open(cfg.Paths.CacheDir, logger)
}

func cacheBusy(err error) error {
	if errors.Is(err, artifactcache.ErrBusy) {
		return fmt.Errorf("cache is in use by a running render: %w", err)
	}
	return err
}

func humanTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}
