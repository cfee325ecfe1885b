package publish

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/document"
)

// LatestObject is the name of the pointer object written next to the
// documents of a schedule.
const LatestObject = "latest"

var contentTypes = map[document.Format]string{
	document.FormatXML: "application/xml",
	document.FormatHCL: "text/plain; charset=utf-8",
}

// Result describes one Publish call.
type Result struct {
	Key string
	// Uploaded is false when an identical document was already published.
	Uploaded bool
}

// Publisher writes rendered documents to an ObjectStore.
type Publisher struct {
	store  ObjectStore
	prefix string
}

// NewPublisher creates a publisher that stores objects below prefix.
func NewPublisher(store ObjectStore, prefix string) *Publisher {
	return &Publisher{store: store, prefix: strings.Trim(prefix, "/")}
}

// ObjectKey returns the key a document of the given schedule and hash is
// stored under.
func (p *Publisher) ObjectKey(schedule, hash string, f document.Format) string {
	return path.Join(p.prefix, schedule, hash+f.Extension())
}

// Publish uploads doc unless an object with the same hash exists.
func (p *Publisher) Publish(ctx context.Context, schedule string, doc []byte, f document.Format) (Result, error) {
	logger := ctxlog.FromContext(ctx).With("schedule", schedule)

	if strings.TrimSpace(schedule) == "" {
		return Result{}, fmt.Errorf("schedule name is required")
	}
	key := p.ObjectKey(schedule, document.Hash(doc), f)

	exists, err := p.store.Exists(ctx, key)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check %s: %w", key, err)
	}
	if exists {
		logger.Debug("Document already published.", "key", key)
		return Result{Key: key}, nil
	}

	contentType := contentTypes[f]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := p.store.Put(ctx, key, doc, contentType); err != nil {
		return Result{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	latest := path.Join(p.prefix, schedule, LatestObject)
	if err := p.store.Put(ctx, latest, []byte(key+"\n"), "text/plain; charset=utf-8"); err != nil {
		return Result{}, fmt.Errorf("failed to update %s: %w", latest, err)
	}

	logger.Info("Document published.", "key", key)
	return Result{Key: key, Uploaded: true}, nil
}
