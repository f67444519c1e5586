package stats

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

var mr *miniredis.Miniredis

func TestMain(m *testing.M) {
	var err error
	mr, err = miniredis.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "miniredis:", err)
		os.Exit(1)
	}
	// the pool dials lazily, so this must happen before any cache call
	os.Setenv("REDIS_ADDR", mr.Addr())

	code := m.Run()
	mr.Close()
	os.Exit(code)
}

func TestFromCache_Miss(t *testing.T) {
	mr.FlushAll()

	d, ok := FromCache()
	if ok {
		t.Errorf("FromCache() = %+v, want miss", d)
	}
}

func TestSaveCacheFromCache(t *testing.T) {
	mr.FlushAll()

	want := &Dashboard{
		Users:        UserStats{Total: 12, Manufacturers: 4, Distributors: 3, Pharmacists: 4, Admins: 1},
		Transactions: TransactionStats{Total: 87, Confirmed: 80, Pending: 5, Failed: 2},
	}
	if err := SaveCache(want); err != nil {
		t.Fatalf("SaveCache() error: %v", err)
	}

	got, ok := FromCache()
	if !ok {
		t.Fatal("FromCache() missed right after SaveCache()")
	}
	if *got != *want {
		t.Errorf("FromCache() = %+v, want %+v", got, want)
	}

	if ttl := mr.TTL(cacheKey); ttl <= 0 || ttl > cacheTTLSeconds*time.Second {
		t.Errorf("cache TTL = %v, want (0, %ds]", ttl, cacheTTLSeconds)
	}
}

func TestFromCache_CorruptPayload(t *testing.T) {
	mr.FlushAll()
	mr.Set(cacheKey, "{not json")

	d, ok := FromCache()
	if ok {
		t.Errorf("FromCache() = %+v, want miss on corrupt payload", d)
	}
}
