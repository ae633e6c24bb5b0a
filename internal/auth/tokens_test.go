package auth

import (
	"context"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client), mr
}

func TestGetOrCreateReusesToken(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	first, err := store.GetOrCreate(ctx, 42)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if len(first) != 2*tokenBytes {
		t.Fatalf("unexpected token length %d", len(first))
	}
	second, err := store.GetOrCreate(ctx, 42)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same token, got %q and %q", first, second)
	}

	other, err := store.GetOrCreate(ctx, 43)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if other == first {
		t.Fatal("different users must not share a token")
	}

	if ttl := mr.TTL(tokenKeyPrefix + first); ttl != 0 {
		t.Fatalf("tokens must not expire, got TTL %v", ttl)
	}
	if got, _ := mr.Get(userTokenKeyPrefix + "42"); got != first {
		t.Fatalf("unexpected reverse key value %q", got)
	}
}

func TestGetOrCreateConcurrentCallersAgree(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const n = 16
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := store.GetOrCreate(ctx, 7)
			if err != nil {
				t.Errorf("get or create: %v", err)
				return
			}
			tokens[i] = tok
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if tokens[i] != tokens[0] {
			t.Fatalf("caller %d got %q, caller 0 got %q", i, tokens[i], tokens[0])
		}
	}
}

func TestGetOrCreateLosingRaceAdoptsWinner(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// Another instance already published a token for the user.
	if err := mr.Set(userTokenKeyPrefix+"9", "winner"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := mr.Set(tokenKeyPrefix+"winner", "9"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tok, err := store.GetOrCreate(ctx, 9)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if tok != "winner" {
		t.Fatalf("expected existing token, got %q", tok)
	}
}

func TestUserIDResolvesAndRevoke(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	tok, err := store.GetOrCreate(ctx, 5)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	id, ok, err := store.UserID(ctx, tok)
	if err != nil || !ok || id != 5 {
		t.Fatalf("resolve: id=%d ok=%v err=%v", id, ok, err)
	}

	if _, ok, err := store.UserID(ctx, "nope"); err != nil || ok {
		t.Fatalf("unknown token: ok=%v err=%v", ok, err)
	}

	if err := store.Revoke(ctx, 5); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, ok, _ := store.UserID(ctx, tok); ok {
		t.Fatal("revoked token still resolves")
	}
	if mr.Exists(userTokenKeyPrefix + "5") {
		t.Fatal("reverse key survived revoke")
	}
	if err := store.Revoke(ctx, 5); err != nil {
		t.Fatalf("second revoke should be a no-op, got %v", err)
	}

	fresh, err := store.GetOrCreate(ctx, 5)
	if err != nil {
		t.Fatalf("get or create after revoke: %v", err)
	}
	if fresh == tok {
		t.Fatal("expected a new token after revoke")
	}
}

func TestUserIDCorruptValue(t *testing.T) {
	store, mr := newTestStore(t)
	if err := mr.Set(tokenKeyPrefix+"bad", "not-a-number"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := store.UserID(context.Background(), "bad"); err == nil {
		t.Fatal("expected error for corrupt value")
	}
}
