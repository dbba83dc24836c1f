package logbus_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"backoffice/internal/adapters/out/logbus"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_WritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	p := logbus.NewPublisher(zerolog.New(&buf))

	orderID := kernel.NewUUID()
	err := p.Publish(context.Background(),
		event.NewOrderStatusChanged(event.OrderStatusChanged{OrderID: orderID, From: "PENDING", To: "CONFIRMED"}),
		event.NewRecipeMissing(event.RecipeMissing{OrderID: orderID, ProductID: kernel.NewUUID()}, time.Now()),
	)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, "info", first["level"])
	assert.Equal(t, event.NameOrderStatusChanged, first["event"])
	assert.Equal(t, orderID.String(), first["key"])
	assert.Equal(t, "events", first["component"])

	assert.Equal(t, "warn", second["level"])
	assert.Equal(t, event.NameRecipeMissing, second["event"])
}

type recordingPublisher struct {
	got []event.Event
	err error
}

func (r *recordingPublisher) Publish(_ context.Context, events ...event.Event) error {
	r.got = append(r.got, events...)
	return r.err
}

func TestFanOut_DeliversToEveryPublisher(t *testing.T) {
	failing := &recordingPublisher{err: errors.New("redis down")}
	healthy := &recordingPublisher{}
	fan := logbus.NewFanOut(failing, healthy)

	e := event.NewOrderStatusChanged(event.OrderStatusChanged{OrderID: kernel.NewUUID()})
	err := fan.Publish(context.Background(), e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	assert.Len(t, failing.got, 1)
	assert.Len(t, healthy.got, 1)
}

func TestFanOut_NoEvents(t *testing.T) {
	p := &recordingPublisher{err: errors.New("unused")}

	require.NoError(t, logbus.NewFanOut(p).Publish(context.Background()))
	assert.Empty(t, p.got)
}
