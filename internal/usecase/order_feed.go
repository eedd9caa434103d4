package usecase

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

const DefaultOrderFeedInterval = 5 * time.Second

// OrderSnapshot is the admin order list at a point in time.
type OrderSnapshot struct {
	Orders  []entities.Order
	TakenAt time.Time

	fingerprint uint64
}

// IOrderFeed pushes order list changes to admin subscribers.
type IOrderFeed interface {
	Subscribe() (<-chan OrderSnapshot, func())
}

// OrderFeed polls the order list on a fixed interval and broadcasts a snapshot
// whenever the list changed. Slow subscribers only ever see the latest one.
type OrderFeed struct {
	orders   IOrderUseCase
	interval time.Duration

	mu     sync.Mutex
	subs   map[int]chan OrderSnapshot
	nextID int
	last   *OrderSnapshot
	closed bool
}

var _ IOrderFeed = (*OrderFeed)(nil)

func NewOrderFeed(orders IOrderUseCase, interval time.Duration) *OrderFeed {
	if interval <= 0 {
		interval = DefaultOrderFeedInterval
	}
	return &OrderFeed{orders: orders, interval: interval, subs: make(map[int]chan OrderSnapshot)}
}

// Run polls until ctx is cancelled, then closes every subscription.
func (f *OrderFeed) Run(ctx context.Context) {
	log.Info().Dur("interval", f.interval).Msg("[order][feed] started")
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	defer f.close()

	f.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("[order][feed] stopped")
			return
		case <-ticker.C:
			f.poll(ctx)
		}
	}
}

// Subscribe returns a channel receiving the latest snapshot first and every
// change after it. The returned func unsubscribes.
func (f *OrderFeed) Subscribe() (<-chan OrderSnapshot, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan OrderSnapshot, 1)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	if f.last != nil {
		ch <- *f.last
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if c, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(c)
			}
		})
	}
}

func (f *OrderFeed) poll(ctx context.Context) {
	orders, err := f.orders.List(ctx, interfaces.OrderFilter{})
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Msg("[order][feed] poll failed")
		}
		return
	}
	snap := OrderSnapshot{Orders: orders, TakenAt: time.Now().UTC(), fingerprint: fingerprint(orders)}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last != nil && f.last.fingerprint == snap.fingerprint {
		return
	}
	f.last = &snap
	for _, ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
	log.Debug().Int("orders", len(orders)).Int("subscribers", len(f.subs)).Msg("[order][feed] broadcast")
}

func (f *OrderFeed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}

func fingerprint(orders []entities.Order) uint64 {
	h := fnv.New64a()
	for _, o := range orders {
		h.Write([]byte(o.ID))
		h.Write([]byte{0})
		h.Write([]byte(o.UpdatedAt.UTC().Format(time.RFC3339Nano)))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
