package redis

import (
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestNewSnapshotStore_DefaultKey(t *testing.T) {
	cli := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer cli.Close()

	if s := NewSnapshotStore(cli, ""); s.key != DefaultKey {
		t.Fatalf("key=%q, want %q", s.key, DefaultKey)
	}
	if s := NewSnapshotStore(cli, "custom"); s.key != "custom" {
		t.Fatalf("key=%q, want custom", s.key)
	}
}
