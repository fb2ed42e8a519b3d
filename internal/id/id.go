// Package id provides ID generation for entities that are not part of the
// mobile/HMI wire protocol (session keys and HMI message ids are plain
// uint32 counters, assigned by internal/transport/mobile and
// internal/idalloc respectively).
//
// Two generators are used here for different purposes:
//   - google/uuid for ephemeral, human-irrelevant correlation identifiers
//     (log trace ids) that never need to be sortable.
//   - oklog/ulid for identifiers that benefit from being k-sortable, such
//     as file upload staging tokens, where lexicographic order doubles as
//     upload order for debugging.
package id

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewTraceID returns a fresh trace identifier for log correlation.
func NewTraceID() string {
	return uuid.New().String()
}

// Generator mints k-sortable ULIDs.
type Generator struct {
	mu sync.Mutex
}

var (
	defaultGen  *Generator
	defaultOnce sync.Once
)

// Default returns the process-wide ULID generator.
func Default() *Generator {
	defaultOnce.Do(func() { defaultGen = &Generator{} })
	return defaultGen
}

// NewGenerator constructs a standalone generator, useful in tests that need
// independence from the process-wide singleton.
func NewGenerator() *Generator {
	return &Generator{}
}

// FileToken mints an opaque token for a staged file upload.
func (g *Generator) FileToken() string {
	return g.withPrefix("file")
}

// JobToken mints an opaque token for a deferred SyncP send job.
func (g *Generator) JobToken() string {
	return g.withPrefix("job")
}

func (g *Generator) withPrefix(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	u := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return fmt.Sprintf("%s_%s", prefix, u.String())
}
