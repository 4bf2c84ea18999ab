package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type started struct{ name string }
type finished struct{ name string }

func TestBus_DispatchByType(t *testing.T) {
	b := New()
	var got []string
	SubscribeTo(b, func(_ context.Context, e started) { got = append(got, "start:"+e.name) })
	SubscribeTo(b, func(_ context.Context, e finished) { got = append(got, "finish:"+e.name) })
	SubscribeTo(b, func(_ context.Context, e started) { got = append(got, "start2:"+e.name) })

	PublishTo(context.Background(), b, started{"a"})
	PublishTo(context.Background(), b, finished{"a"})
	PublishTo(context.Background(), b, 42)

	require.Equal(t, []string{"start:a", "start2:a", "finish:a"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()
	var got []int
	handler := func(n int) Handler[started] {
		return func(context.Context, started) { got = append(got, n) }
	}
	unsub1 := SubscribeTo(b, handler(1))
	SubscribeTo(b, handler(2))

	unsub1()
	unsub1()
	PublishTo(context.Background(), b, started{})
	require.Equal(t, []int{2}, got, "only the unsubscribed handler is removed")
}

func TestGlobal(t *testing.T) {
	Use(nil)
	called := false
	Subscribe(func(context.Context, started) { called = true })()
	Publish(context.Background(), started{})
	require.False(t, called)

	b := New()
	Use(b)
	defer Use(nil)
	unsub := Subscribe(func(context.Context, started) { called = true })
	defer unsub()
	Publish(context.Background(), started{})
	require.True(t, called)
}

func TestNilBus(t *testing.T) {
	var b *Bus
	SubscribeTo(b, func(context.Context, started) {})()
	PublishTo(context.Background(), b, started{})
}
