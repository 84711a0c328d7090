package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"resume-match/internal/config"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	closed bool
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, evt Event) error {
	r.got = append(r.got, evt)
	return r.err
}

func TestNew(t *testing.T) {
	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.FixedZone("IST", 19800))
	evt := New(TypeJobsUpdated, JobsUpdated{Source: "manual", Count: 1}, at)
	assert.Equal(t, "2026-04-02T04:30:00Z", evt.Timestamp)
	assert.Equal(t, "jobs_updated", evt.Type)
}

func TestAMQPPublisher_RoutesByType(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "ex"}

	evt := New(TypeAnalysisCompleted, AnalysisCompleted{AnalysisID: "a1", MatchScore: 60}, time.Unix(0, 0))
	require.NoError(t, p.Publish(context.Background(), evt))

	require.Len(t, ch.sent, 1)
	assert.Equal(t, "ex", ch.sent[0].exchange)
	assert.Equal(t, TypeAnalysisCompleted, ch.sent[0].key)
	assert.Equal(t, "application/json", ch.sent[0].msg.ContentType)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &body))
	assert.Equal(t, "analysis_completed", body["type"])
	assert.Equal(t, float64(60), body["payload"].(map[string]any)["match_score"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_CanceledContext(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "ex"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, Event{Type: TypeJobsUpdated}), context.Canceled)
	assert.Empty(t, ch.sent)
}

func TestNewAMQPPublisher_EmptyURL(t *testing.T) {
	_, err := NewAMQPPublisher(config.EventsConfig{})
	assert.Error(t, err)
}

func TestFanout(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ok := &recorder{}
	bad := &recorder{err: errors.New("down")}
	f := NewFanout(zap.New(core), ok, nil, bad, Noop{})

	err := f.Publish(context.Background(), Event{Type: TypeJobsUpdated})
	assert.ErrorContains(t, err, "down")
	assert.Len(t, ok.got, 1)
	assert.Len(t, bad.got, 1)
	assert.Equal(t, 1, logs.FilterMessage("event publish failed").Len())
}
