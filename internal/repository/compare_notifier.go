package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/config"
)

// subscriberBuffer bounds how many updates a slow subscriber may lag behind
// before newer ones are dropped for it.
const subscriberBuffer = 8

// RedisCompareNotifier fans comparison updates out to every connection of a
// client through Redis Pub/Sub, so tabs served by different instances stay in sync.
type RedisCompareNotifier struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewRedisCompareNotifier(rdb *redis.Client, log zerolog.Logger) *RedisCompareNotifier {
	return &RedisCompareNotifier{
		rdb: rdb,
		log: log.With().Str("component", "compare_notifier").Logger(),
	}
}

func (n *RedisCompareNotifier) Publish(ctx context.Context, clientID string, ids []int) error {
	raw, err := encodeIDs(ids)
	if err != nil {
		return err
	}
	if err := n.rdb.Publish(ctx, config.CacheKey.CompareUpdatesChannel(clientID), raw).Err(); err != nil {
		return fmt.Errorf("publish compare update: %w", err)
	}
	return nil
}

// Subscribe delivers updates until ctx is cancelled, then closes the channel.
func (n *RedisCompareNotifier) Subscribe(ctx context.Context, clientID string) (<-chan []int, error) {
	pubsub := n.rdb.Subscribe(ctx, config.CacheKey.CompareUpdatesChannel(clientID))
	// Wait for the subscription confirmation so no publish after return is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe compare updates: %w", err)
	}

	out := make(chan []int, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				ids, err := decodeIDs([]byte(msg.Payload))
				if err != nil {
					n.log.Warn().Err(err).Str("client_id", clientID).Msg("Dropping malformed compare update")
					continue
				}
				select {
				case out <- ids:
				default:
					n.log.Warn().Str("client_id", clientID).Msg("Subscriber lagging, update dropped")
				}
			}
		}
	}()
	return out, nil
}

// MemoryCompareNotifier is the single-process counterpart of RedisCompareNotifier.
type MemoryCompareNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan []int]struct{}
}

func NewMemoryCompareNotifier() *MemoryCompareNotifier {
	return &MemoryCompareNotifier{subs: make(map[string]map[chan []int]struct{})}
}

func (n *MemoryCompareNotifier) Publish(_ context.Context, clientID string, ids []int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[clientID] {
		select {
		case ch <- slices.Clone(ids):
		default:
		}
	}
	return nil
}

func (n *MemoryCompareNotifier) Subscribe(ctx context.Context, clientID string) (<-chan []int, error) {
	ch := make(chan []int, subscriberBuffer)

	n.mu.Lock()
	if n.subs[clientID] == nil {
		n.subs[clientID] = make(map[chan []int]struct{})
	}
	n.subs[clientID][ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs[clientID], ch)
		if len(n.subs[clientID]) == 0 {
			delete(n.subs, clientID)
		}
		close(ch)
		n.mu.Unlock()
	}()
	return ch, nil
}
