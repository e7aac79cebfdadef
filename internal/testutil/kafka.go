//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — топик и consumer group с общим случайным суффиксом,
// чтобы тесты не читали сообщения друг друга.
func UniqueTopicAndGroup(base string) (topic, group string) {
	suffix := UniqSuffix()
	return base + "-" + suffix, base + "-g-" + suffix
}

// EnsureTopic — создаёт топик с одной партицией через контроллер кластера
// и ждёт, пока он появится в метаданных. Существующий топик не ошибка.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	ctrl, err := conn.Controller()
	_ = conn.Close()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}

	return waitForPartitions(ctx, addr, topic, 5*time.Second)
}

func bootstrapAddr(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitForPartitions(ctx context.Context, addr, topic string, limit time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err == nil {
			var parts []kafka.Partition
			parts, err = conn.ReadPartitions(topic)
			_ = conn.Close()
			if err == nil && len(parts) > 0 {
				return nil
			}
		}
		lastErr = err

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-tick.C:
		}
	}
}
