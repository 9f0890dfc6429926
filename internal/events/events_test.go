package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeClient struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeClient) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	out := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		out = append(out, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return out
}

func (f *fakeClient) Close() { f.closed = true }

func sampleEvent() OrderEvent {
	return OrderEvent{
		Type:           OrderStatusChanged,
		OrderID:        "o1",
		UserID:         "u1",
		StoreID:        "s1",
		StoreName:      "Acme",
		Status:         "Cancelled",
		PreviousStatus: "Awaiting Seller Approval",
		TotalPrice:     42.5,
		OccurredAt:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecode(t *testing.T) {
	in := sampleEvent()

	b, err := Encode(in)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	out, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, in.OrderID, out.OrderID)
	assert.Equal(t, in.Type, out.Type)
	assert.Equal(t, in.PreviousStatus, out.PreviousStatus)
	assert.InDelta(t, in.TotalPrice, out.TotalPrice, 0.0001)
	assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
}

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Run("Keyed by store", func(t *testing.T) {
		cl := &fakeClient{}
		p := NewKafkaPublisherWithClient(cl, "orders")

		require.NoError(t, p.Publish(context.Background(), sampleEvent()))
		require.Len(t, cl.records, 1)

		r := cl.records[0]
		assert.Equal(t, "orders", r.Topic)
		assert.Equal(t, []byte("s1"), r.Key)
		assert.Equal(t, "type", r.Headers[0].Key)
		assert.Equal(t, []byte(OrderStatusChanged), r.Headers[0].Value)

		decoded, err := Decode(r.Value)
		require.NoError(t, err)
		assert.Equal(t, "o1", decoded.OrderID)
	})

	t.Run("Broker error", func(t *testing.T) {
		cl := &fakeClient{err: errors.New("broker down")}
		p := NewKafkaPublisherWithClient(cl, "orders")

		err := p.Publish(context.Background(), sampleEvent())
		assert.ErrorContains(t, err, "broker down")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cl := &fakeClient{}
		p := NewKafkaPublisherWithClient(cl, "orders")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, p.Publish(ctx, sampleEvent()), context.Canceled)
		assert.Empty(t, cl.records)
	})
}

func TestKafkaPublisher_Close(t *testing.T) {
	cl := &fakeClient{}
	NewKafkaPublisherWithClient(cl, "orders").Close()
	assert.True(t, cl.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
	p.Close()
}
