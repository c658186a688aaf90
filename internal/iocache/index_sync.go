package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/index"
	"github.com/huangsam/triage/schema"
)

// SyncStats summarizes what the index sync did with the cache.
type SyncStats struct {
	Fresh  int // documents reused from cache
	Stale  int // documents rebuilt (missing, changed, or corrupt)
	Pruned int // cache entries removed for deleted files
}

// SyncIndex reconciles the index cache with the live file set and returns
// one IndexedDocument per file, in file order.
//
// A cached document is reused only when its stored fingerprint matches the
// fingerprint of the file's current content. Anything else, including rows
// that fail to decode, is treated as stale and rebuilt. Entries for paths
// no longer present are pruned.
func SyncIndex(ctx context.Context, cfg *contract.Config, store contract.CacheStore, files []schema.FileRecord) ([]schema.IndexedDocument, SyncStats, error) {
	var stats SyncStats
	builder := index.NewBuilder(cfg.Boosts, cfg.Stemming)

	docs := make([]schema.IndexedDocument, len(files))
	rebuild := make([]int, 0, len(files))

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		fingerprint := index.Fingerprint(file.Content)
		blob, cachedFingerprint, err := store.Get(file.Path)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			rebuild = append(rebuild, i)
			continue
		case err != nil:
			return nil, stats, fmt.Errorf("failed to read index cache for %s: %w", file.Path, err)
		}

		if cachedFingerprint != fingerprint {
			rebuild = append(rebuild, i)
			continue
		}

		doc, decodeErr := DecodeDocument(blob)
		if decodeErr != nil {
			// Corrupt row. Rebuild rather than fail the pass.
			contract.LogWarn("discarding unreadable cache entry", decodeErr)
			rebuild = append(rebuild, i)
			continue
		}
		if doc.Path != file.Path {
			rebuild = append(rebuild, i)
			continue
		}

		docs[i] = doc
		stats.Fresh++
	}

	// Rebuild stale documents concurrently. Building is pure CPU work on
	// content already in memory, so only the writeback below touches the DB.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, i := range rebuild {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i] = builder.BuildDocument(files[i].Path, files[i].Content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	// Write back rebuilt documents as one batch after the pass.
	now := time.Now().Unix()
	for _, i := range rebuild {
		blob, err := EncodeDocument(docs[i])
		if err != nil {
			return nil, stats, fmt.Errorf("failed to encode index document for %s: %w", docs[i].Path, err)
		}
		if err := store.Set(docs[i].Path, blob, docs[i].Fingerprint, now); err != nil {
			return nil, stats, fmt.Errorf("failed to write index cache for %s: %w", docs[i].Path, err)
		}
		stats.Stale++
	}

	pruned, err := pruneDeleted(store, files)
	if err != nil {
		return nil, stats, err
	}
	stats.Pruned = pruned

	return docs, stats, nil
}

// pruneDeleted removes cache entries whose paths are not in the live file set.
func pruneDeleted(store contract.CacheStore, files []schema.FileRecord) (int, error) {
	keys, err := store.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list index cache keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	live := make(map[string]struct{}, len(files))
	for _, file := range files {
		live[file.Path] = struct{}{}
	}

	sort.Strings(keys)
	pruned := 0
	for _, key := range keys {
		if _, ok := live[key]; ok {
			continue
		}
		if err := store.Delete(key); err != nil {
			return pruned, fmt.Errorf("failed to prune index cache entry %s: %w", key, err)
		}
		pruned++
	}
	return pruned, nil
}

// EncodeDocument serializes an IndexedDocument for cache storage.
func EncodeDocument(doc schema.IndexedDocument) ([]byte, error) {
	return json.Marshal(doc)
}

// DecodeDocument deserializes a cached IndexedDocument blob.
func DecodeDocument(blob []byte) (schema.IndexedDocument, error) {
	var doc schema.IndexedDocument
	if err := json.Unmarshal(blob, &doc); err != nil {
		return schema.IndexedDocument{}, err
	}
	return doc, nil
}
