package infolist_test

import (
	"context"
	"errors"
	"time"

	"github.com/stephenafamo/infolist"
)

// stubHost serves the same field list for a fixed number of rows
// and records every getter call
type stubHost struct {
	fields  string
	rows    int
	openErr error
	null    bool

	ints  map[string]int
	strs  map[string]string
	ptrs  map[string]infolist.Pointer
	times map[string]time.Time

	opened   []string // name, pointer, arguments
	calls    []string
	freed    int
	advanced int
}

var errBoom = errors.New("boom")

func (s *stubHost) OpenQuery(_ context.Context, name string, pointer infolist.Pointer, arguments string) (infolist.Pointer, error) {
	s.opened = []string{name, string(pointer), arguments}
	if s.openErr != nil {
		return "", s.openErr
	}
	if s.null {
		return "", nil
	}
	return "0x2a", nil
}

func (s *stubHost) FreeQuery(infolist.Pointer) {
	s.freed++
}

func (s *stubHost) AdvanceQuery(infolist.Pointer) bool {
	s.advanced++
	if s.rows == 0 {
		return false
	}
	s.rows--
	return true
}

func (s *stubHost) Fields(infolist.Pointer) string {
	return s.fields
}

func (s *stubHost) Integer(_ infolist.Pointer, field string) int {
	s.calls = append(s.calls, "integer:"+field)
	return s.ints[field]
}

func (s *stubHost) String(_ infolist.Pointer, field string) string {
	s.calls = append(s.calls, "string:"+field)
	return s.strs[field]
}

func (s *stubHost) Pointer(_ infolist.Pointer, field string) infolist.Pointer {
	s.calls = append(s.calls, "pointer:"+field)
	return s.ptrs[field]
}

func (s *stubHost) Time(_ infolist.Pointer, field string) time.Time {
	s.calls = append(s.calls, "time:"+field)
	return s.times[field]
}
