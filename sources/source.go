// Package sources provides byte sources that feed the KEL decoder: local
// CESR files, OOBI HTTP endpoints, and (via subpackages) remote gRPC
// services. Sources fetch complete buffers; all framing decisions belong to
// the decoder.
package sources

import (
	"context"

	"kelp.dev/kelp/kel"
)

// Source yields decoded key events from one KEL byte source.
//
// FetchEvents retrieves the source's complete stream, decodes it, and
// returns the events, filtered to aid when aid is non-empty. Implementations
// own any timeout or cancellation via ctx; the decoder itself has none.
type Source interface {
	FetchEvents(ctx context.Context, aid string) ([]kel.Event, error)
	Description() string
	Close() error
}

// filterByAID keeps only events belonging to aid; empty aid keeps all.
func filterByAID(events []kel.Event, aid string) []kel.Event {
	if aid == "" {
		return events
	}
	out := make([]kel.Event, 0, len(events))
	for _, e := range events {
		if e.Identifier() == aid {
			out = append(out, e)
		}
	}
	return out
}
