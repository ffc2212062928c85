package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/saemcare/saem-backend/internal/logger"
)

// ReportCreatedEvent is published whenever a weekly report is created, so
// caregiver-facing frontends can refresh without polling.
type ReportCreatedEvent struct {
	ReportID      uuid.UUID `json:"report_id"`
	ElderID       uuid.UUID `json:"elder_id"`
	Year          int       `json:"year"`
	WeekNumber    int       `json:"week_number"`
	AnalysisCount int       `json:"analysis_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReportBus interface {
	PublishReportCreated(ctx context.Context, event ReportCreatedEvent) error
	StartForwarder(ctx context.Context, onEvent func(e ReportCreatedEvent)) error
	Close() error
}

type reportBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewReportBus(log *logger.Logger) (ReportBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_CHANNEL"))
	if ch == "" {
		ch = "reports"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &reportBus{
		log:     log.With("service", "RedisReportBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *reportBus) PublishReportCreated(ctx context.Context, event ReportCreatedEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis report bus not initialized")
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *reportBus) StartForwarder(ctx context.Context, onEvent func(e ReportCreatedEvent)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis report bus not initialized")
	}
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var event ReportCreatedEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					b.log.Warn("bad redis report payload", "error", err)
					continue
				}
				onEvent(event)
			}
		}
	}()

	return nil
}

func (b *reportBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
