package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// programCache stores compiled programs keyed by the xxh3 hash of their
// source text.
var programCache sync.Map

// cacheEntry compiles its source at most once, even when several
// goroutines miss on the same key.
type cacheEntry struct {
	once sync.Once
	prog *Program
}

func compileCached(ctx context.Context, source string, o options) *Program {
	hash := xxh3.HashString(source)

	value, hit := programCache.LoadOrStore(hash, new(cacheEntry))

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit))

	entry, ok := value.(*cacheEntry)
	if !ok {
		return compile(ctx, source, o)
	}

	entry.once.Do(func() {
		entry.prog = compile(ctx, source, o)
	})

	// A hash collision yields some other program; compile without caching.
	if entry.prog.Source != source {
		o.logger.TraceContext(ctx, "cache collision",
			slog.String("source_hash", strconv.FormatUint(hash, 16)))

		return compile(ctx, source, o)
	}

	return entry.prog
}

// ClearCache removes every cached program.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	programCache.Range(func(key, _ any) bool {
		programCache.Delete(key)

		return true
	})
}

// readAll reads r to EOF through an asynchronous read-ahead buffer.
func readAll(r io.Reader) ([]byte, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	return io.ReadAll(ra)
}
