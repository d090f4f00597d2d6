package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	handled []*Event
	err     error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *Event) error {
	h.handled = append(h.handled, event)
	return h.err
}

func TestNewEvent(t *testing.T) {
	payload := SessionCompleted{SessionID: 3, UserID: 9, ExerciseType: "memory_cards", FinalScore: 81.6}

	event, err := NewEvent(TypeSessionCompleted, payload)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeSessionCompleted, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded SessionCompleted
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)

	_, err = NewEvent("bad", make(chan int))
	assert.Error(t, err)
}

func TestInMemoryEmitter(t *testing.T) {
	log, _ := logger.NewBufferLogger()

	t.Run("no handlers", func(t *testing.T) {
		e := NewInMemoryEmitter(log)
		event, err := NewEvent("x", nil)
		require.NoError(t, err)
		assert.NoError(t, e.EmitEvent(context.Background(), event))
	})

	t.Run("every handler receives the event", func(t *testing.T) {
		e := NewInMemoryEmitter(log)
		h1, h2 := &recordingHandler{}, &recordingHandler{}
		e.RegisterHandler(h1)
		e.RegisterHandler(h2)

		event, err := NewEvent("x", map[string]int{"a": 1})
		require.NoError(t, err)
		require.NoError(t, e.EmitEvent(context.Background(), event))
		assert.Equal(t, []*Event{event}, h1.handled)
		assert.Equal(t, []*Event{event}, h2.handled)
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		e := NewInMemoryEmitter(log)
		failing := &recordingHandler{err: errors.New("handler error")}
		ok := &recordingHandler{}
		e.RegisterHandler(failing)
		e.RegisterHandler(ok)

		event, err := NewEvent("x", nil)
		require.NoError(t, err)
		err = e.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler error")
		assert.Len(t, ok.handled, 1)
	})

	t.Run("handler func", func(t *testing.T) {
		e := NewInMemoryEmitter(nil)
		var got string
		e.RegisterHandler(HandlerFunc(func(_ context.Context, ev *Event) error {
			got = ev.Type
			return nil
		}))
		event, err := NewEvent("ping", nil)
		require.NoError(t, err)
		require.NoError(t, e.EmitEvent(context.Background(), event))
		assert.Equal(t, "ping", got)
	})
}

func TestLoggingHandler(t *testing.T) {
	log, buf := logger.NewBufferLogger()
	h := NewLoggingHandler(log)

	event, err := NewEvent(TypeSessionCompleted, SessionCompleted{SessionID: 5, UserID: 2, FinalScore: 70})
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), event))

	other, err := NewEvent("other", nil)
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), other))

	entries := buf.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "exercise session completed", entries[0]["msg"])
	assert.EqualValues(t, 5, entries[0]["session_id"])
	assert.Equal(t, "session_events", entries[0]["component"])
}
