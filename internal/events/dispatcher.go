package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	httpclient "github.com/kinlabs/kin-paymaster/internal/client/http"
	sqsclient "github.com/kinlabs/kin-paymaster/internal/client/sqs"
	"github.com/kinlabs/kin-paymaster/internal/logger"
)

// Fact is one observable external effect emitted by a settled paymaster
// operation, as delivered to off-chain consumers. All amounts are base-10
// wei strings.
type Fact struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	RelayerAddress string    `json:"relayer_address"`
	UserAddress    string    `json:"user_address,omitempty"`
	Amount         string    `json:"amount"`
	Royalty        string    `json:"royalty"`
	RelayerFee     string    `json:"relayer_fee"`
	Net            string    `json:"net"`
	TxHash         string    `json:"tx_hash,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Sink delivers a fact to one downstream consumer.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, fact Fact) error
}

// WebhookSink posts facts to a configured HTTP endpoint.
type WebhookSink struct {
	client *httpclient.HTTPClient
	url    string
}

// NewWebhookSink creates a webhook sink for the given endpoint.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		client: httpclient.NewHTTPClient(),
		url:    url,
	}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Deliver(ctx context.Context, fact Fact) error {
	return s.client.PostJSON(ctx, s.url, fact)
}

// SQSSink publishes facts to an SQS queue.
type SQSSink struct {
	publisher *sqsclient.Publisher
}

// NewSQSSink wraps an SQS publisher as a sink.
func NewSQSSink(publisher *sqsclient.Publisher) *SQSSink {
	return &SQSSink{publisher: publisher}
}

func (s *SQSSink) Name() string { return "sqs" }

func (s *SQSSink) Deliver(ctx context.Context, fact Fact) error {
	return s.publisher.Publish(ctx, fact.Type, fact)
}

// Dispatcher fans emitted facts out to the configured sinks from a pool of
// workers. Delivery is best-effort and fully decoupled from operation
// atomicity: facts are enqueued only after their transaction has committed,
// and a failed delivery never unwinds a settled operation.
type Dispatcher struct {
	facts       chan Fact
	sinks       []Sink
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc

	mu      sync.Mutex
	stopped bool
}

// NewDispatcher creates a dispatcher with the given number of workers and
// queue buffer size.
func NewDispatcher(workerCount, bufferSize int, sinks ...Sink) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		facts:       make(chan Fact, bufferSize),
		sinks:       sinks,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	logger.Info("Starting event dispatcher",
		zap.Int("worker_count", d.workerCount),
		zap.Int("sink_count", len(d.sinks)),
	)

	for i := 0; i < d.workerCount; i++ {
		workerID := i
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.run(workerID)
		}()
	}
}

func (d *Dispatcher) run(workerID int) {
	for {
		select {
		case <-d.ctx.Done():
			return
		case fact, ok := <-d.facts:
			if !ok {
				return
			}
			d.deliver(fact, workerID)
		}
	}
}

func (d *Dispatcher) deliver(fact Fact, workerID int) {
	for _, sink := range d.sinks {
		if err := sink.Deliver(d.ctx, fact); err != nil {
			logger.Error("Failed to deliver paymaster event",
				zap.String("sink", sink.Name()),
				zap.String("event_type", fact.Type),
				zap.String("event_id", fact.ID.String()),
				zap.Int("worker_id", workerID),
				zap.Error(err),
			)
		}
	}
}

// Enqueue hands a fact to the dispatcher without blocking the caller. If the
// buffer is full, or the dispatcher is already stopping, the fact is dropped
// with a warning; the durable copy lives in the paymaster_events table
// regardless.
func (d *Dispatcher) Enqueue(fact Fact) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		logger.Warn("Event dispatcher stopped, dropping fact",
			zap.String("event_type", fact.Type),
			zap.String("event_id", fact.ID.String()),
		)
		return
	}
	select {
	case d.facts <- fact:
	default:
		logger.Warn("Event dispatch queue full, dropping fact",
			zap.String("event_type", fact.Type),
			zap.String("event_id", fact.ID.String()),
		)
	}
}

// Stop drains in-flight deliveries and stops the workers. Facts enqueued
// after Stop begins are dropped rather than sent on the closing channel.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.facts)
	d.wg.Wait()
	d.cancel()
	logger.Info("Event dispatcher stopped")
}
