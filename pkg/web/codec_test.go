package web

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	uierrors "github.com/go-drift/uicore/pkg/errors"
)

func TestCodecs_RoundTrip(t *testing.T) {
	msg := Message{Handle: 42, Event: "click"}
	for _, c := range []Codec{JSONCodec{}, CBORCodec{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Encode(msg)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(msg, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONCodec_WireFormat(t *testing.T) {
	data, err := JSONCodec{}.Encode(Message{Handle: 7, Event: "mouseenter"})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"handle":7,"event":"mouseenter"}` {
		t.Errorf("JSON = %s", got)
	}
}

func TestCBORCodec_IntegerKeys(t *testing.T) {
	data, err := CBORCodec{}.Encode(Message{Handle: 1, Event: "click"})
	if err != nil {
		t.Fatal(err)
	}
	// map(2) {1: 1, 2: "click"}
	want := []byte{0xa2, 0x01, 0x01, 0x02, 0x65, 'c', 'l', 'i', 'c', 'k'}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("CBOR mismatch (-want +got):\n%s", diff)
	}
}

func TestCodecByName(t *testing.T) {
	if c, err := CodecByName("CBOR"); err != nil || c.Name() != "cbor" {
		t.Errorf("CodecByName(CBOR) = %v, %v", c, err)
	}
	_, err := CodecByName("msgpack")
	var uerr *uierrors.UIError
	if !errors.As(err, &uerr) || uerr.Kind != uierrors.KindCodec {
		t.Errorf("expected codec UIError, got %v", err)
	}
}

func TestHandleMessage_Dispatches(t *testing.T) {
	for _, c := range []Codec{JSONCodec{}, CBORCodec{}} {
		t.Run(c.Name(), func(t *testing.T) {
			f := newFixture(t)
			f.frame(nil)
			h := f.dom.Listeners(f.dom.Find("div"), "click")[0]

			data, err := c.Encode(Message{Handle: h, Event: "click"})
			if err != nil {
				t.Fatal(err)
			}
			if err := f.mount.HandleMessage(c, data); err != nil {
				t.Fatalf("HandleMessage: %v", err)
			}
			f.cell.Borrow(func(tg *toggle) {
				if tg.clicks != 1 {
					t.Errorf("clicks = %d, want 1", tg.clicks)
				}
			})
		})
	}
}

func TestCBORCodec_LargeHandle(t *testing.T) {
	msg := Message{Handle: 1<<31 + 5, Event: "mouseleave"}
	data, err := CBORCodec{}.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := CBORCodec{}.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != msg {
		t.Errorf("Decode = %+v, want %+v", got, msg)
	}
}

func TestHandleMessage_Errors(t *testing.T) {
	f := newFixture(t)
	f.frame(nil)
	click := f.dom.Listeners(f.dom.Find("div"), "click")[0]

	tests := []struct {
		name string
		msg  *Message
		data []byte
	}{
		{name: "garbage", data: []byte("{{")},
		{name: "no handle", data: []byte(`{"event":"click"}`)},
		{name: "unknown event", msg: &Message{Handle: click, Event: "keydown"}},
		{name: "wrong event for handle", msg: &Message{Handle: click, Event: "mousedown"}},
		{name: "unregistered handle", msg: &Message{Handle: click + 1000, Event: "click"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if tt.msg != nil {
				var err error
				if data, err = (JSONCodec{}).Encode(*tt.msg); err != nil {
					t.Fatal(err)
				}
			}
			err := f.mount.HandleMessage(JSONCodec{}, data)
			var uerr *uierrors.UIError
			if !errors.As(err, &uerr) || uerr.Kind != uierrors.KindCodec {
				t.Errorf("expected codec UIError, got %v", err)
			}
		})
	}
	f.cell.Borrow(func(tg *toggle) {
		if tg.clicks != 0 {
			t.Errorf("clicks = %d, rejected messages must not dispatch", tg.clicks)
		}
	})
}

func TestHandleMessage_ReleasedListenerRejected(t *testing.T) {
	f := newFixture(t)
	f.frame(nil)
	h := f.dom.Listeners(f.dom.Find("div"), "click")[0]
	f.mount.Unmount()

	data, _ := JSONCodec{}.Encode(Message{Handle: h, Event: "click"})
	if err := f.mount.HandleMessage(JSONCodec{}, data); err == nil {
		t.Error("expected error for a handle released by Unmount")
	}
}
