// Package replay records the input of a session and re-simulates it.
// Runs are deterministic for a given config, seed, frame rate and input log,
// so a stored run can be verified by stepping a fresh game.
package replay

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/lungbird/internal/core"
)

// Entry is the set of actions applied on one frame.
type Entry struct {
	Frame   uint64        `msgpack:"f"`
	Actions []core.Action `msgpack:"a"`
}

// Recorder collects non-empty input frames since the last Reset.
type Recorder struct {
	entries []Entry
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record stores the input applied on frame. Empty frames are skipped.
func (r *Recorder) Record(frame uint64, in core.InputFrame) {
	if in.Empty() {
		return
	}
	r.entries = append(r.entries, Entry{Frame: frame, Actions: in.List()})
}

// Reset drops every entry.
func (r *Recorder) Reset() {
	r.entries = r.entries[:0]
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the log.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Encode serializes the log with msgpack.
func (r *Recorder) Encode() ([]byte, error) {
	return Encode(r.entries)
}

// Encode serializes an input log with msgpack.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := msgpack.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("replay: encode input log: %w", err)
	}
	return data, nil
}

// Decode parses an input log produced by Encode.
func Decode(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := msgpack.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("replay: decode input log: %w", err)
	}
	return entries, nil
}
