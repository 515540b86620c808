package domain

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestSession_Fields(t *testing.T) {
	s := NewSession()
	s.Set("nickname", "x")
	s.Set("score", 3)

	if v, ok := s.Get("nickname"); !ok || v != "x" {
		t.Errorf("Get(nickname) = (%v, %v), want (x, true)", v, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if got := s.Keys(); !reflect.DeepEqual(got, []string{"nickname", "score"}) {
		t.Errorf("Keys() = %v", got)
	}

	s.Delete("score")
	if _, ok := s.Get("score"); ok {
		t.Error("score should be deleted")
	}
}

func TestSession_RestoreMetadata(t *testing.T) {
	s := NewSession()
	if _, ok := s.RestoreMetadata(); ok {
		t.Fatal("new session should have no metadata")
	}

	now := time.Unix(100, 0)
	s.SetRestoreMetadata(RestoreMetadata{Token: "t", IssuedAt: now})

	md, ok := s.RestoreMetadata()
	if !ok || md.Token != "t" || !md.IssuedAt.Equal(now) {
		t.Errorf("RestoreMetadata() = (%+v, %v)", md, ok)
	}
	if s.Len() != 0 {
		t.Error("metadata must not appear among fields")
	}
}

func TestSession_CopyFrom(t *testing.T) {
	old := NewSession()
	old.Set("nickname", "x")
	old.Set("cart", []string{"a"})
	old.Set(FieldConnection, "old-conn")
	old.Set(FieldMessage, "old-msg")
	old.Set("secret", "s")
	old.SetRestoreMetadata(RestoreMetadata{Token: "old"})

	cur := NewSession()
	cur.Set(FieldConnection, "new-conn")
	cur.Set("nickname", "y")
	cur.SetRestoreMetadata(RestoreMetadata{Token: "new"})

	skip := ReservedFields().Union(NewKeySet("secret"))
	n := cur.CopyFrom(old, skip)
	if n != 2 {
		t.Errorf("CopyFrom copied %d fields, want 2", n)
	}

	if v, _ := cur.Get("nickname"); v != "x" {
		t.Errorf("nickname = %v, want x (overwritten)", v)
	}
	if v, _ := cur.Get(FieldConnection); v != "new-conn" {
		t.Errorf("connection handle = %v, must not be copied", v)
	}
	if _, ok := cur.Get(FieldMessage); ok {
		t.Error("message must not be copied")
	}
	if _, ok := cur.Get("secret"); ok {
		t.Error("omitted key must not be copied")
	}
	if md, _ := cur.RestoreMetadata(); md.Token != "new" {
		t.Errorf("metadata token = %q, must stay new", md.Token)
	}
}

func TestSession_CopyFromSelf(t *testing.T) {
	s := NewSession()
	s.Set("a", 1)
	if n := s.CopyFrom(s, nil); n != 0 {
		t.Errorf("CopyFrom(self) = %d, want 0", n)
	}
	if n := s.CopyFrom(nil, nil); n != 0 {
		t.Errorf("CopyFrom(nil) = %d, want 0", n)
	}
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := NewSession()
	src := NewSession()
	src.Set("k", "v")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set("n", j)
				s.Fields(nil)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.CopyFrom(src, nil)
			}
		}()
	}
	wg.Wait()

	if v, _ := s.Get("k"); v != "v" {
		t.Errorf("k = %v, want v", v)
	}
}
