// Package notice carries blocking, human-readable messages from the storage
// layer to whoever is presenting the notebook to the user.
package notice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Kind classifies a notice.
type Kind string

const (
	// KindStorageFull is raised when the storage medium rejected a write for capacity.
	KindStorageFull Kind = "storage_full"
)

// Notice is a message the user must acknowledge.
type Notice struct {
	Kind      Kind      `json:"kind"`
	Keys      []string  `json:"keys,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// StorageFull builds the notice shown when writes to keys could not be persisted.
func StorageFull(keys ...string) Notice {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	names := strings.Join(quoted, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "The notebook's storage is full. This usually happens when many recordings carry photos or long voice notes. ")
	fmt.Fprintf(&b, "The latest changes to %s (new recordings, photos, or voice notes) could not be saved and will be lost when the notebook restarts.\n\n", names)
	b.WriteString("To free up space, try:\n")
	b.WriteString("1. Deleting older projects or recordings, especially those with large media files.\n")
	b.WriteString("2. Reducing the number of photos or the length of voice notes in new recordings.\n\n")
	b.WriteString("After freeing up space, try your last action again.")

	return Notice{
		Kind:      KindStorageFull,
		Keys:      append([]string(nil), keys...),
		Title:     fmt.Sprintf("Storage limit reached for %s", names),
		Message:   b.String(),
		CreatedAt: time.Now(),
	}
}

const defaultInboxSize = 32

// Inbox queues notices until a presenter drains them. When full, the oldest
// notice is dropped.
type Inbox struct {
	mu      sync.Mutex
	pending []Notice
	size    int
}

// NewInbox creates an inbox holding up to size notices (a default when size <= 0).
func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = defaultInboxSize
	}
	return &Inbox{size: size}
}

// Notify hands n to the collector carried by ctx, if any, and otherwise
// queues it.
func (i *Inbox) Notify(ctx context.Context, n Notice) {
	if c, ok := ctx.Value(collectorKey{}).(*Collector); ok {
		c.add(n)
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.pending) == i.size {
		i.pending = i.pending[1:]
	}
	i.pending = append(i.pending, n)
}

// Drain returns and clears the queued notices, oldest first.
func (i *Inbox) Drain() []Notice {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.pending
	i.pending = nil
	return out
}

// Len reports how many notices are queued.
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.pending)
}

type collectorKey struct{}

// Collector gathers the notices raised while serving one request, so they
// reach the caller that caused them and nobody else.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// WithCollector returns a context whose notices are gathered by the returned
// Collector instead of an Inbox queue.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

// Collected drains the collector carried by ctx. It returns nil when ctx has
// none.
func Collected(ctx context.Context) []Notice {
	c, ok := ctx.Value(collectorKey{}).(*Collector)
	if !ok {
		return nil
	}
	return c.Drain()
}

func (c *Collector) add(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

// Drain returns and clears the gathered notices, oldest first.
func (c *Collector) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}
