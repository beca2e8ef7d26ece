package kv

import (
	"context"
	"encoding/json"

	"storefront/internal/util"

	"go.uber.org/zap"
)

// Load parses the JSON blob stored under key into dest and reports whether a
// value was loaded. A missing key or a parse failure leaves dest untouched so
// the caller's fallback wins; when purge is set the corrupted entry is deleted
// so the failure does not repeat on the next hydration.
func Load(ctx context.Context, s Store, key string, dest interface{}, purge bool) bool {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		util.KVLoadFailedTotal.WithLabelValues("store_error").Inc()
		util.GetLogger().Warn("kv load failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		util.KVLoadFailedTotal.WithLabelValues("parse_error").Inc()
		util.GetLogger().Warn("kv blob unparseable, using fallback",
			zap.String("key", key), zap.Error(err))
		if purge {
			if derr := s.Delete(ctx, key); derr != nil {
				util.GetLogger().Warn("kv purge failed", zap.String("key", key), zap.Error(derr))
			}
		}
		return false
	}

	return true
}

// Save serializes v under key. Persistence is best-effort: failures are
// logged and counted, never surfaced to the caller.
func Save(ctx context.Context, s Store, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		util.KVSaveFailedTotal.Inc()
		util.GetLogger().Error("kv marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.Set(ctx, key, string(raw)); err != nil {
		util.KVSaveFailedTotal.Inc()
		util.GetLogger().Error("kv save failed", zap.String("key", key), zap.Error(err))
	}
}
