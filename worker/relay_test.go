package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jfinfosena/25adso-pap/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxRepo struct {
	pending    []repository.Outbox
	pendingErr error
	published  []uint
	markErr    error
}

func (f *fakeOutboxRepo) GetPending(_ context.Context, limit int) ([]repository.Outbox, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxRepo) MarkPublished(_ context.Context, ids []uint) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.published = append(f.published, ids...)
	return nil
}

type fakeProducer struct {
	pushed  [][]byte
	pushErr error
}

func (f *fakeProducer) Push(messages [][]byte) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, messages...)
	return nil
}

func TestRelay_RelayOnce(t *testing.T) {
	outbox := &fakeOutboxRepo{
		pending: []repository.Outbox{
			{ID: 1, Content: []byte(`{"type":"loan.created"}`)},
			{ID: 2, Content: []byte(`{"type":"loan.returned"}`)},
		},
	}
	producer := &fakeProducer{}
	relay := NewRelay(outbox, producer, time.Second, 100)

	require.NoError(t, relay.RelayOnce(context.Background()))

	assert.Equal(t, [][]byte{
		[]byte(`{"type":"loan.created"}`),
		[]byte(`{"type":"loan.returned"}`),
	}, producer.pushed)
	assert.Equal(t, []uint{1, 2}, outbox.published)
}

func TestRelay_RelayOnce_Empty(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	producer := &fakeProducer{}
	relay := NewRelay(outbox, producer, time.Second, 100)

	require.NoError(t, relay.RelayOnce(context.Background()))
	assert.Empty(t, producer.pushed)
	assert.Empty(t, outbox.published)
}

func TestRelay_RelayOnce_PushFails(t *testing.T) {
	outbox := &fakeOutboxRepo{
		pending: []repository.Outbox{{ID: 1, Content: []byte("x")}},
	}
	producer := &fakeProducer{pushErr: errors.New("broker down")}
	relay := NewRelay(outbox, producer, time.Second, 100)

	err := relay.RelayOnce(context.Background())
	assert.Error(t, err)
	assert.Empty(t, outbox.published, "rows stay pending when the push fails")
}

func TestRelay_RelayOnce_RespectsBatch(t *testing.T) {
	outbox := &fakeOutboxRepo{
		pending: []repository.Outbox{
			{ID: 1, Content: []byte("a")},
			{ID: 2, Content: []byte("b")},
			{ID: 3, Content: []byte("c")},
		},
	}
	producer := &fakeProducer{}
	relay := NewRelay(outbox, producer, time.Second, 2)

	require.NoError(t, relay.RelayOnce(context.Background()))
	assert.Len(t, producer.pushed, 2)
	assert.Equal(t, []uint{1, 2}, outbox.published)
}
