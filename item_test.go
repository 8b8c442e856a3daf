package infolist_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stephenafamo/infolist"
)

func advanceStub(t *testing.T, h *stubHost) (*infolist.Cursor, *infolist.Item) {
	t.Helper()

	c := openStub(t, h)
	it, err := c.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	return c, it
}

func TestItemGet(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &stubHost{
		fields: "iafoo,sbbar,pcbaz,tdqux",
		rows:   1,
		ints:   map[string]int{"foo": 1},
		strs:   map[string]string{"bar": "x"},
		ptrs:   map[string]infolist.Pointer{"baz": "0x10"},
		times:  map[string]time.Time{"qux": when},
	}
	c, it := advanceStub(t, h)
	defer c.Close()

	expectedTypes := map[string]infolist.FieldType{
		"foo": infolist.TypeInteger,
		"bar": infolist.TypeString,
		"baz": infolist.TypePointer,
		"qux": infolist.TypeTime,
	}
	for name, want := range expectedTypes {
		got, err := it.Type(name)
		if err != nil || got != want {
			t.Fatalf("type of %q: got %v, %v, want %v", name, got, err, want)
		}
	}

	fields, err := it.Fields()
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if diff := cmp.Diff([]string{"foo", "bar", "baz", "qux"}, fields); diff != "" {
		t.Fatalf("diff: %s", diff)
	}

	// reading builds nothing up front
	if len(h.calls) != 0 {
		t.Fatalf("values read eagerly: %v", h.calls)
	}

	v, err := it.Get("foo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(any(1), v); diff != "" {
		t.Fatalf("diff: %s", diff)
	}
	if diff := cmp.Diff([]string{"integer:foo"}, h.calls); diff != "" {
		t.Fatalf("diff: %s", diff)
	}

	for name, want := range map[string]any{"bar": "x", "baz": infolist.Pointer("0x10"), "qux": when} {
		v, err := it.Get(name)
		if err != nil {
			t.Fatalf("get %q: %v", name, err)
		}
		if diff := cmp.Diff(want, v); diff != "" {
			t.Fatalf("%s diff: %s", name, diff)
		}
	}
}

func TestItemErrors(t *testing.T) {
	h := &stubHost{fields: "i:number,x:weird", rows: 1}
	c, it := advanceStub(t, h)
	defer c.Close()

	t.Run("missing field", func(t *testing.T) {
		_, err := it.Get("nope")

		var merr *infolist.MissingFieldError
		if !errors.As(err, &merr) || merr.Field != "nope" {
			t.Fatalf("expected MissingFieldError, got %v", err)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := it.Get("weird")

		var terr *infolist.FieldTypeError
		if !errors.As(err, &terr) {
			t.Fatalf("expected FieldTypeError, got %v", err)
		}
		if terr.Field != "weird" || terr.Type != 'x' || terr.Want != 0 {
			t.Fatalf("wrong error %#v", terr)
		}
	})

	t.Run("typed mismatch", func(t *testing.T) {
		_, err := it.String("number")

		var terr *infolist.FieldTypeError
		if !errors.As(err, &terr) {
			t.Fatalf("expected FieldTypeError, got %v", err)
		}
		if terr.Type != infolist.TypeInteger || terr.Want != infolist.TypeString {
			t.Fatalf("wrong error %#v", terr)
		}
	})

	t.Run("type of missing field", func(t *testing.T) {
		_, err := it.Type("nope")

		var merr *infolist.MissingFieldError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MissingFieldError, got %v", err)
		}
	})

	t.Run("typed missing", func(t *testing.T) {
		_, err := it.Time("nope")

		var merr *infolist.MissingFieldError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MissingFieldError, got %v", err)
		}
	})

	t.Run("generic value of the wrong type", func(t *testing.T) {
		_, err := infolist.Value[string](it, "number")

		var merr *infolist.MappingError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MappingError, got %v", err)
		}
	})
}

func TestItemTyped(t *testing.T) {
	when := time.Unix(1700000000, 0)
	h := &stubHost{
		fields: "i:number,s:name,p:pointer,t:time",
		rows:   1,
		ints:   map[string]int{"number": 4},
		strs:   map[string]string{"name": "irc.libera"},
		ptrs:   map[string]infolist.Pointer{"pointer": "0xbeef"},
		times:  map[string]time.Time{"time": when},
	}
	c, it := advanceStub(t, h)
	defer c.Close()

	if n, err := it.Integer("number"); err != nil || n != 4 {
		t.Fatalf("Integer = %d, %v", n, err)
	}
	if s, err := it.String("name"); err != nil || s != "irc.libera" {
		t.Fatalf("String = %q, %v", s, err)
	}
	if p, err := it.Pointer("pointer"); err != nil || p != "0xbeef" {
		t.Fatalf("Pointer = %q, %v", p, err)
	}
	if tm, err := it.Time("time"); err != nil || !tm.Equal(when) {
		t.Fatalf("Time = %v, %v", tm, err)
	}
	if n, err := infolist.Value[int](it, "number"); err != nil || n != 4 {
		t.Fatalf("Value = %d, %v", n, err)
	}
}

func TestItemClone(t *testing.T) {
	h := &stubHost{
		fields: "i:a,s:b",
		rows:   2,
		ints:   map[string]int{"a": 1},
		strs:   map[string]string{"b": "x"},
	}
	c, it := advanceStub(t, h)

	snap, err := it.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	expected := infolist.Snapshot{"a": 1, "b": "x"}
	if diff := cmp.Diff(expected, snap); diff != "" {
		t.Fatalf("diff: %s", diff)
	}

	if err := it.Close(); err != nil {
		t.Fatalf("closing item: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("closing cursor: %v", err)
	}

	if diff := cmp.Diff(expected, snap); diff != "" {
		t.Fatalf("snapshot changed after close: %s", diff)
	}

	if _, err := it.Clone(); !errors.Is(err, infolist.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestItemClose(t *testing.T) {
	h := &stubHost{fields: "i:number", rows: 1}
	c, it := advanceStub(t, h)
	defer c.Close()

	if err := it.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := it.Close(); !errors.Is(err, infolist.ErrClosed) {
		t.Fatalf("expected ErrClosed on second close, got %v", err)
	}
	if _, err := it.Get("number"); !errors.Is(err, infolist.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if fields, err := it.Fields(); !errors.Is(err, infolist.ErrClosed) || fields != nil {
		t.Fatalf("Fields after close = %v, %v", fields, err)
	}
	if _, err := it.Type("number"); !errors.Is(err, infolist.ErrClosed) {
		t.Fatalf("expected ErrClosed from Type, got %v", err)
	}

	// the handle belongs to the cursor
	if h.freed != 0 {
		t.Fatalf("item close freed the handle")
	}
	if _, err := c.Integer("number"); err != nil {
		t.Fatalf("cursor unusable after item close: %v", err)
	}
}
