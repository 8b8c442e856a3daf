package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stephenafamo/infolist"
)

type fakeClient struct {
	hooked  []string
	printed []string
	hookErr error
}

func (f *fakeClient) HookCommand(spec Spec, callback, data string) error {
	if f.hookErr != nil {
		return f.hookErr
	}
	f.hooked = append(f.hooked, spec.Name+"="+callback)
	return nil
}

func (f *fakeClient) Print(buffer infolist.Pointer, message string) {
	f.printed = append(f.printed, message)
}

func TestRegister(t *testing.T) {
	client := &fakeClient{}
	r := NewRegistry(client, zerolog.Nop())

	noop := func(context.Context, infolist.Pointer, string) (bool, error) { return true, nil }

	if err := r.Register(Spec{Name: "buffers"}, "cb_buffers", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(Spec{Name: "other"}, "cb_buffers", noop); err == nil {
		t.Fatal("duplicate callback accepted")
	}

	if diff := cmp.Diff([]string{"buffers=cb_buffers"}, client.hooked); diff != "" {
		t.Fatalf("diff: %s", diff)
	}

	client.hookErr = errors.New("refused")
	err := r.Register(Spec{Name: "nicks"}, "cb_nicks", noop)
	if !errors.Is(err, client.hookErr) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if code := r.Dispatch(context.Background(), "cb_nicks", "", "", ""); code != Error {
		t.Fatalf("failed registration is dispatchable, got %s", code)
	}
}

func TestDispatch(t *testing.T) {
	cases := map[string]struct {
		handler Handler
		code    ReturnCode
		printed []string
	}{
		"ok": {
			handler: func(context.Context, infolist.Pointer, string) (bool, error) { return true, nil },
			code:    OK,
		},
		"false": {
			handler: func(context.Context, infolist.Pointer, string) (bool, error) { return false, nil },
			code:    Error,
		},
		"error": {
			handler: func(context.Context, infolist.Pointer, string) (bool, error) {
				return false, errors.New("no such buffer")
			},
			code:    Error,
			printed: []string{"cmd: no such buffer"},
		},
		"panic": {
			handler: func(context.Context, infolist.Pointer, string) (bool, error) { panic("oops") },
			code:    Error,
			printed: []string{"cmd: panic: oops"},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{}
			r := NewRegistry(client, zerolog.Nop())
			if err := r.Register(Spec{Name: "cmd"}, "cb", tc.handler); err != nil {
				t.Fatalf("register: %v", err)
			}

			if code := r.Dispatch(context.Background(), "cb", "", "0x1", "args"); code != tc.code {
				t.Fatalf("got %s, want %s", code, tc.code)
			}
			if diff := cmp.Diff(tc.printed, client.printed); diff != "" {
				t.Fatalf("diff: %s", diff)
			}
		})
	}
}

func TestDispatchArgs(t *testing.T) {
	r := NewRegistry(&fakeClient{}, zerolog.Nop())

	var gotBuffer infolist.Pointer
	var gotArgs string
	err := r.Register(Spec{Name: "cmd"}, "cb", func(_ context.Context, buffer infolist.Pointer, args string) (bool, error) {
		gotBuffer, gotArgs = buffer, args
		return true, nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	r.Dispatch(context.Background(), "cb", "data", "0xff", "-all")
	if gotBuffer != "0xff" || gotArgs != "-all" {
		t.Fatalf("handler got buffer %q args %q", gotBuffer, gotArgs)
	}
}

func TestDispatchUnknown(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(&fakeClient{}, zerolog.New(&buf))

	if code := r.Dispatch(context.Background(), "missing", "", "", ""); code != Error {
		t.Fatalf("got %s", code)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"callback":"missing"`)) {
		t.Fatalf("unknown callback not logged: %s", buf.String())
	}
}
