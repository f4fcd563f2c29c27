package web

import (
	"github.com/vovakirdan/lungbird/internal/runner"
)

// outbox queues encoded frames for the writer without blocking the runner.
// A frame that does not fit is dropped, but its events ride along with the
// next frame that does. Only the runner goroutine calls push.
type outbox struct {
	codec Codec
	send  chan []byte
	carry []EventMessage
}

func newOutbox(codec Codec, size int) *outbox {
	return &outbox{codec: codec, send: make(chan []byte, size)}
}

// push encodes f and queues it. It reports whether the frame was queued.
func (o *outbox) push(f runner.Frame) (bool, error) {
	msg := newServerMessage(f)
	if len(o.carry) > 0 {
		msg.Events = append(o.carry, msg.Events...)
	}

	data, err := o.codec.Marshal(msg)
	if err != nil {
		return false, err
	}

	select {
	case o.send <- data:
		o.carry = nil
		return true, nil
	default:
		o.carry = msg.Events
		return false, nil
	}
}
