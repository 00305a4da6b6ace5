package events

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kinlabs/kin-paymaster/internal/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger()
	os.Exit(m.Run())
}

// recordingSink collects delivered facts for assertions.
type recordingSink struct {
	mu    sync.Mutex
	facts []Fact
	err   error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Deliver(_ context.Context, fact Fact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facts = append(s.facts, fact)
	return s.err
}

func (s *recordingSink) delivered() []Fact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Fact(nil), s.facts...)
}

func newFact(eventType string) Fact {
	return Fact{
		ID:         uuid.New(),
		Type:       eventType,
		Amount:     "10000",
		Royalty:    "250",
		RelayerFee: "100",
		Net:        "9650",
		OccurredAt: time.Now().UTC(),
	}
}

func TestDispatcherDeliversToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}

	d := NewDispatcher(1, 10, first, second)
	d.Start()

	fact := newFact("royalty_paid")
	d.Enqueue(fact)
	d.Enqueue(newFact("deposit_forwarded"))

	d.Stop()

	assert.Len(t, first.delivered(), 2)
	assert.Len(t, second.delivered(), 2)
	assert.Equal(t, fact.ID, first.delivered()[0].ID)
}

func TestDispatcherSurvivesSinkFailure(t *testing.T) {
	failing := &recordingSink{err: errors.New("endpoint down")}
	healthy := &recordingSink{}

	d := NewDispatcher(1, 10, failing, healthy)
	d.Start()

	d.Enqueue(newFact("fees_claimed"))
	d.Stop()

	// the failing sink does not block delivery to the next one
	assert.Len(t, failing.delivered(), 1)
	assert.Len(t, healthy.delivered(), 1)
}

func TestDispatcherDropsAfterStop(t *testing.T) {
	sink := &recordingSink{}

	d := NewDispatcher(1, 10, sink)
	d.Start()

	d.Enqueue(newFact("royalty_paid"))
	d.Stop()

	// an operation settling during shutdown must not panic on the
	// closed channel
	assert.NotPanics(t, func() {
		d.Enqueue(newFact("fees_claimed"))
	})
	assert.NotPanics(t, d.Stop)

	assert.Len(t, sink.delivered(), 1)
}

func TestDispatcherDropsWhenBufferFull(t *testing.T) {
	sink := &recordingSink{}

	// no workers started, so the buffer never drains
	d := NewDispatcher(1, 1, sink)

	d.Enqueue(newFact("royalty_paid"))
	d.Enqueue(newFact("royalty_paid")) // dropped, must not block

	d.Start()
	d.Stop()

	assert.Len(t, sink.delivered(), 1)
}
