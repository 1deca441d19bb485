package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guide struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

func TestNilClientFallsBackToNoop(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	assert.False(t, svc.Enabled())
	assert.ErrorIs(t, svc.Ping(ctx), ErrDisabled)

	var out guide
	assert.ErrorIs(t, svc.Get(ctx, "k", &out), ErrCacheMiss)
	assert.NoError(t, svc.Set(ctx, "k", guide{}, time.Minute))

	deleted, err := svc.DeletePattern(ctx, "kinderadmin:*")
	assert.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestNoopGetOrSetAlwaysFetches(t *testing.T) {
	svc := NewService(nil)
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return guide{Path: "/dashboard", Title: "首页"}, nil
	}

	var out guide
	require.NoError(t, svc.GetOrSet(context.Background(), "k", time.Minute, fetch, &out))
	require.NoError(t, svc.GetOrSet(context.Background(), "k", time.Minute, fetch, &out))

	assert.Equal(t, 2, calls)
	assert.Equal(t, "首页", out.Title)
}

func TestNoopGetOrSetPropagatesFetcherError(t *testing.T) {
	svc := NewService(nil)
	sentinel := errors.New("db down")

	var out guide
	err := svc.GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		return nil, sentinel
	}, &out)

	assert.ErrorIs(t, err, sentinel)
}

func TestConnectRejectsEmptyAddress(t *testing.T) {
	_, err := Connect(context.Background(), Config{})
	assert.Error(t, err)
}
