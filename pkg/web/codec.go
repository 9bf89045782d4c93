package web

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/core"
	"github.com/go-drift/uicore/pkg/errors"
)

// Message is a DOM event sent from the host runtime: the listener handle
// that fired and the DOM event name.
type Message struct {
	Handle callback.Handle `json:"handle"`
	Event  string          `json:"event"`
}

// cborMessage is the CBOR form of Message. The cbor package has no
// encoding for uintptr, so the handle travels as an unsigned integer.
type cborMessage struct {
	Handle uint64 `cbor:"1,keyasint"`
	Event  string `cbor:"2,keyasint"`
}

// Codec encodes and decodes host messages.
type Codec interface {
	Name() string
	Encode(msg Message) ([]byte, error)
	Decode(data []byte) (Message, error)
}

// JSONCodec encodes messages as JSON objects.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Decode(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("web: cbor enc mode: %v", err))
	}
	cborEncMode = em
}

// CBORCodec encodes messages as canonical CBOR maps with integer keys.
type CBORCodec struct{}

func (CBORCodec) Name() string { return "cbor" }

func (CBORCodec) Encode(msg Message) ([]byte, error) {
	return cborEncMode.Marshal(cborMessage{Handle: uint64(msg.Handle), Event: msg.Event})
}

func (CBORCodec) Decode(data []byte) (Message, error) {
	var wire cborMessage
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return Message{}, err
	}
	return Message{Handle: callback.Handle(wire.Handle), Event: wire.Event}, nil
}

// CodecByName returns the codec called name ("json" or "cbor").
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSONCodec{}, nil
	case "cbor":
		return CBORCodec{}, nil
	default:
		return nil, &errors.UIError{
			Op:        "web.CodecByName",
			Kind:      errors.KindCodec,
			Err:       fmt.Errorf("unknown codec %q", name),
			Timestamp: time.Now(),
		}
	}
}

// HandleMessage decodes a host message and dispatches it to the listener
// it names. Undecodable messages, a zero handle, unknown event names and
// handles not registered by this mount for that event are returned as
// errors of kind codec; misuse of the handle itself panics as
// DispatchEvent does.
func (mt *Mount) HandleMessage(codec Codec, data []byte) error {
	msg, err := codec.Decode(data)
	if err != nil {
		return codecError(fmt.Errorf("decode %s message: %w", codec.Name(), err))
	}
	if msg.Handle == 0 {
		return codecError(fmt.Errorf("message has no handle"))
	}
	kind, ok := core.ParseEventKind(msg.Event)
	if !ok {
		return codecError(fmt.Errorf("unknown event %q", msg.Event))
	}

	mt.mu.Lock()
	registered, ok := mt.handles[msg.Handle]
	mt.mu.Unlock()
	if !ok {
		return codecError(fmt.Errorf("handle %d is not a listener of this mount", msg.Handle))
	}
	if registered != kind {
		return codecError(fmt.Errorf("handle %d listens for %s, not %s", msg.Handle, registered.DOMName(), msg.Event))
	}
	DispatchEvent(msg.Handle)
	return nil
}

func codecError(err error) error {
	return &errors.UIError{
		Op:        "web.HandleMessage",
		Kind:      errors.KindCodec,
		Err:       err,
		Timestamp: time.Now(),
	}
}
