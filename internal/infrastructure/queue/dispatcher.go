// Package queue contains the asynchronous stock movement journal. Movements
// are fanned out to a fixed set of workers by sweet ID so entries for the
// same sweet are written in the order they were recorded.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/api/metrics"
	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes stock movements to a fixed set of workers using
// consistent hashing on the sweet ID, guaranteeing per-sweet ordering.
// Recording never blocks the request path: when a worker buffer is full the
// movement is dropped and counted.
type Dispatcher struct {
	workers []chan domain.StockMovement
	repo    ports.MovementRepository
	log     zerolog.Logger
}

var _ ports.MovementJournal = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.MovementRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.StockMovement, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StockMovement, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues a movement on the worker responsible for its sweet.
func (d *Dispatcher) Record(m domain.StockMovement) {
	i := d.shardIndex(m.SweetID)
	select {
	case d.workers[i] <- m:
		metrics.MovementQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		metrics.MovementsDroppedTotal.Inc()
		d.log.Warn().Str("sweet_id", m.SweetID).Str("kind", string(m.Kind)).Msg("movement journal buffer full, entry dropped")
	}
}

// shardIndex maps a sweet ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(sweetID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sweetID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StockMovement) {
	gauge := metrics.MovementQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))

			start := time.Now()
			if err := d.repo.Insert(ctx, &m); err != nil {
				d.log.Error().Err(err).
					Str("sweet_id", m.SweetID).
					Int("worker_id", id).
					Msg("movement journal write failed")
				continue
			}
			metrics.MovementWriteDuration.Observe(time.Since(start).Seconds())
			metrics.MovementsJournaledTotal.WithLabelValues(string(m.Kind)).Inc()
		}
	}
}
