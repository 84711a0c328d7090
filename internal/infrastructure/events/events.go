package events

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/logger"

	"go.uber.org/zap"
)

const (
	TypeAnalysisCompleted = "analysis_completed"
	TypeJobsUpdated       = "jobs_updated"
)

type Event struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload,omitempty"`
}

func New(typ string, payload any, now time.Time) Event {
	return Event{Type: typ, Timestamp: now.UTC().Format(time.RFC3339), Payload: payload}
}

// AnalysisCompleted is the payload of analysis_completed.
type AnalysisCompleted struct {
	AnalysisID string `json:"analysis_id"`
	ResumeID   string `json:"resume_id"`
	JobID      string `json:"job_id"`
	UserID     string `json:"user_id"`
	MatchScore int    `json:"match_score"`
}

// JobsUpdated is the payload of jobs_updated.
type JobsUpdated struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Fanout delivers every event to all publishers, logging failures.
type Fanout struct {
	pubs []Publisher
	log  *zap.Logger
}

func NewFanout(log *zap.Logger, pubs ...Publisher) *Fanout {
	out := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p != nil {
			out = append(out, p)
		}
	}
	return &Fanout{pubs: out, log: logger.OrNop(log)}
}

func (f *Fanout) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, p := range f.pubs {
		if err := p.Publish(ctx, evt); err != nil {
			f.log.Warn("event publish failed", zap.String("type", evt.Type), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
