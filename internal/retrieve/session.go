// Package retrieve implements the paginated retrieval engine: the
// fetch/retry/accumulate loop that drives a full session against the API.
package retrieve

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pugetsound-wardrive/wiglectl/internal/model"
	"github.com/pugetsound-wardrive/wiglectl/pkg/wigle"
)

// Outcome is the terminal state of a retrieval session.
type Outcome int

const (
	// OutcomeCompleted: the upstream reported no further pages.
	OutcomeCompleted Outcome = iota
	// OutcomeFailed: a page failed fatally; records gathered before
	// that page are retained. Partial success, not a full abort.
	OutcomeFailed
	// OutcomeInterrupted: the user requested a stop; whatever was
	// accumulated is retained.
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Query is the full input to one retrieval session.
type Query struct {
	Bounds      model.QueryBounds
	Kind        wigle.Kind
	OnlyMine    bool
	LastUpdated string
}

// Session is the aggregate for one retrieval run. Records accumulate
// append-only, in page order and within-page order.
type Session struct {
	ID        uuid.UUID
	Bounds    model.QueryBounds
	Kind      wigle.Kind
	Records   []model.NetworkRecord
	StartedAt time.Time
	// TotalAvailable is the upstream's reported match count, -1 until the
	// first page arrives.
	TotalAvailable int
	Pages          int
	Outcome        Outcome
	// Err holds the fatal page error when Outcome is OutcomeFailed.
	Err error
}

// Driver runs retrieval sessions against a wigle.Client.
type Driver struct {
	client wigle.Client
	opts   Options
	log    *zap.Logger
}

// NewDriver creates a Driver. Zero-valued Options fields take defaults.
func NewDriver(client wigle.Client, opts Options) *Driver {
	return &Driver{
		client: client,
		opts:   opts.withDefaults(),
		log:    zap.L().With(zap.String("component", "retrieve.driver")),
	}
}

// Run executes the pagination loop until the upstream is exhausted, a page
// fails fatally, or ctx is cancelled. It always returns a Session; the
// caller decides what to do with the accumulated records. Cancellation is
// cooperative: it is observed between iterations and during backoff sleeps,
// never mid-request.
func (d *Driver) Run(ctx context.Context, q Query) *Session {
	sess := &Session{
		ID:             uuid.New(),
		Bounds:         q.Bounds,
		Kind:           q.Kind,
		StartedAt:      time.Now().UTC(),
		TotalAvailable: -1,
	}

	params := wigle.SearchParams{
		Kind:        q.Kind,
		LatLow:      q.Bounds.LatLow,
		LatHigh:     q.Bounds.LatHigh,
		LonLow:      q.Bounds.LonLow,
		LonHigh:     q.Bounds.LonHigh,
		OnlyMine:    q.OnlyMine,
		LastUpdated: q.LastUpdated,
		PageSize:    d.opts.PageSize,
	}

	log := d.log.With(
		zap.String("session_id", sess.ID.String()),
		zap.String("kind", string(q.Kind)),
	)
	log.Info("session started",
		zap.Float64("latrange1", q.Bounds.LatLow),
		zap.Float64("latrange2", q.Bounds.LatHigh),
		zap.Float64("longrange1", q.Bounds.LonLow),
		zap.Float64("longrange2", q.Bounds.LonHigh),
	)

	// seen tracks cursors already consumed, dedup tracks record identities.
	seen := make(map[string]struct{})
	dedup := make(map[string]struct{})
	cursor := ""

	for {
		if ctx.Err() != nil {
			sess.Outcome = OutcomeInterrupted
			log.Info("session interrupted", zap.Int("records", len(sess.Records)))
			return sess
		}

		page, err := d.fetchPage(ctx, log, params, cursor)
		if err != nil {
			if ctx.Err() != nil {
				sess.Outcome = OutcomeInterrupted
				log.Info("session interrupted", zap.Int("records", len(sess.Records)))
				return sess
			}
			sess.Outcome = OutcomeFailed
			sess.Err = err
			log.Error("session ended on page failure",
				zap.Int("pages", sess.Pages),
				zap.Int("records", len(sess.Records)),
				zap.Error(err),
			)
			return sess
		}

		sess.Pages++
		if sess.TotalAvailable < 0 {
			sess.TotalAvailable = page.TotalResults
		}

		for _, n := range page.Results {
			rec := sanitizeNetwork(n)
			if _, dup := dedup[rec.Key()]; dup {
				continue
			}
			dedup[rec.Key()] = struct{}{}
			sess.Records = append(sess.Records, rec)
		}

		log.Info("page retrieved",
			zap.Int("page", sess.Pages),
			zap.Int("page_records", len(page.Results)),
			zap.Int("accumulated", len(sess.Records)),
			zap.Int("total_available", sess.TotalAvailable),
		)

		next := page.SearchAfter
		if next == "" || next == cursor {
			break
		}
		// A cursor the upstream already handed out would loop forever
		// against a misbehaving API; treat it as exhaustion.
		if _, repeated := seen[next]; repeated {
			log.Warn("upstream repeated a pagination cursor, stopping", zap.String("cursor", next))
			break
		}
		if sess.TotalAvailable >= 0 && len(sess.Records) >= sess.TotalAvailable {
			break
		}

		seen[next] = struct{}{}
		cursor = next
	}

	sess.Outcome = OutcomeCompleted
	log.Info("session completed",
		zap.Int("pages", sess.Pages),
		zap.Int("records", len(sess.Records)),
	)
	return sess
}
