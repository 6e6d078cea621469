package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitDataChanged_CallsRegisteredHandlers(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "posts",
		Operation:      OpInsert,
	})

	select {
	case e := <-received:
		assert.Equal(t, "posts", e.CollectionName)
		assert.Equal(t, OpInsert, e.Operation)
	case <-time.After(time.Second):
		t.Fatal("handler không được gọi sau khi emit event")
	}
}

func TestEmitDataChanged_PanicInHandlerDoesNotCrash(t *testing.T) {
	done := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		panic("handler hỏng")
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		done <- struct{}{}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "users", Operation: OpDelete})

	select {
	case <-done:
		// Handler sau vẫn chạy dù handler trước panic
	case <-time.After(time.Second):
		t.Fatal("handler thứ hai không chạy khi handler đầu panic")
	}
}
