//go:build integration

package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	redisad "park_palace/internal/adapters/redis"
)

func TestNotificationStore_RealRedis(t *testing.T) {
	// Start an isolated Redis; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := "127.0.0.1:" + resource.GetPort("6379/tcp")
	store := redisad.New(addr, "", 0)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := pool.Retry(func() error { return store.Ping(ctx) }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	if err := store.Put(ctx, "it", note("n1", time.Now()), time.Second); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.List(ctx, "it")
	if err != nil || len(got) != 1 {
		t.Fatalf("List: %v %+v", err, got)
	}

	// real TTL expiry
	time.Sleep(1500 * time.Millisecond)
	got, err = store.List(ctx, "it")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected expiry, got %v %+v", err, got)
	}
}
