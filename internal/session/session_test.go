package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/present"
)

func textSlides() []deck.Slide {
	return []deck.Slide{
		{Kind: deck.KindTitle, Title: "Intro", Items: []deck.Item{deck.Text{Content: "Intro"}}},
		{Kind: deck.KindContent, Items: []deck.Item{
			deck.Text{Content: "one."},
			deck.Text{Content: "two."},
			deck.Text{Content: "three."},
		}},
	}
}

func TestNewID_Format(t *testing.T) {
	id := NewID()
	if len(id) != 26 {
		t.Fatalf("expected 26 chars, got %d (%q)", len(id), id)
	}
	for _, c := range id {
		if !strings.ContainsRune(crockford, c) {
			t.Errorf("unexpected character %q in %q", c, id)
		}
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d calls", id, i)
		}
		seen[id] = true
	}
}

func TestNewID_Monotonic(t *testing.T) {
	prev := NewID()
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id <= prev {
			t.Fatalf("ID %q does not sort after %q", id, prev)
		}
		prev = id
	}
}

func TestIncrement_Carry(t *testing.T) {
	r := [10]byte{0, 0, 0, 0, 0, 0, 0, 0x01, 0xff, 0xff}
	increment(&r)
	if want := [10]byte{0, 0, 0, 0, 0, 0, 0, 0x02, 0, 0}; r != want {
		t.Errorf("expected %x, got %x", want, r)
	}

	r = [10]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0x41}
	increment(&r)
	if r[9] != 0x42 || r[8] != 0 {
		t.Errorf("expected low byte 0x42 with no carry, got %x", r)
	}
}

func TestIncrement_Wraps(t *testing.T) {
	var r [10]byte
	for i := range r {
		r[i] = 0xff
	}
	increment(&r)
	if r != ([10]byte{}) {
		t.Errorf("expected wrap to zero, got %x", r)
	}
}

func TestEncodeBase32_Zero(t *testing.T) {
	if got := encodeBase32([16]byte{}); got != strings.Repeat("0", 26) {
		t.Errorf("expected all zeros, got %q", got)
	}
}

func TestEncodeBase32_Max(t *testing.T) {
	var b [16]byte
	for i := range b {
		b[i] = 0xff
	}
	want := "7" + strings.Repeat("Z", 25)
	if got := encodeBase32(b); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSession_HandleNoOverflow(t *testing.T) {
	sess := New("Doc", "doc.md", textSlides())
	before := sess.HTML()

	out, markup, err := sess.Handle(present.TransitionEvent{IndexH: 1, RenderedHeight: 100, ViewportHeight: 700})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Split {
		t.Error("expected no split")
	}
	if markup != before {
		t.Errorf("markup changed without a split")
	}
	if sess.Len() != 2 {
		t.Errorf("expected 2 slides, got %d", sess.Len())
	}
}

func TestSession_HandleSplit(t *testing.T) {
	sess := New("Doc", "doc.md", textSlides())

	out, markup, err := sess.Handle(present.TransitionEvent{IndexH: 1, RenderedHeight: 900, ViewportHeight: 700})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Split {
		t.Fatal("expected split")
	}
	if sess.Len() != 3 {
		t.Errorf("expected 3 slides, got %d", sess.Len())
	}
	if strings.Count(markup, "<section>") != 3 {
		t.Errorf("expected 3 sections, got %q", markup)
	}
	if snap := sess.Snapshot(); snap.Splits != 1 {
		t.Errorf("expected 1 split recorded, got %d", snap.Splits)
	}
}

func TestSession_HandleOutOfRange(t *testing.T) {
	sess := New("Doc", "doc.md", textSlides())
	_, _, err := sess.Handle(present.TransitionEvent{IndexH: 9, RenderedHeight: 900, ViewportHeight: 700})
	if !errors.Is(err, deck.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSession_ConcurrentHandle(t *testing.T) {
	sess := New("Doc", "doc.md", textSlides())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.Handle(present.TransitionEvent{IndexH: 1, RenderedHeight: 900, ViewportHeight: 700})
		}()
	}
	wg.Wait()

	// Index 1 splits 3 -> 2+1, then 2 -> 1+1, then stays put.
	if n := sess.Len(); n != 4 {
		t.Errorf("expected 4 slides, got %d", n)
	}
}

func TestSession_Snapshot(t *testing.T) {
	sess := New("Doc", "doc.md", textSlides())
	snap := sess.Snapshot()
	if snap.ID != sess.ID || snap.Title != "Doc" || snap.Filename != "doc.md" {
		t.Errorf("unexpected snapshot header: %+v", snap)
	}
	if len(snap.Slides) != 2 || snap.Slides[1].Kind != "content" {
		t.Errorf("unexpected slides: %+v", snap.Slides)
	}
}

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore(time.Hour, 0)
	sess := New("Doc", "doc.md", textSlides())
	if err := store.Put(sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("expected stored session, got %v, %v", got, err)
	}
	if !store.Delete(sess.ID) {
		t.Error("expected delete to report existing session")
	}
	if store.Delete(sess.ID) {
		t.Error("expected second delete to report missing session")
	}
	if _, err := store.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Full(t *testing.T) {
	store := NewStore(time.Hour, 1)
	first := New("A", "a.md", textSlides())
	if err := store.Put(first); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(New("B", "b.md", textSlides())); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	// Replacing an existing ID does not count against capacity.
	if err := store.Put(first); err != nil {
		t.Errorf("expected re-put to succeed, got %v", err)
	}
}

func TestStore_Cleanup(t *testing.T) {
	store := NewStore(time.Hour, 0)

	old := New("Old", "old.md", textSlides())
	old.UpdatedAt = time.Now().Add(-2 * time.Hour)
	fresh := New("Fresh", "fresh.md", textSlides())
	store.Put(old)
	store.Put(fresh)

	if dropped := store.Cleanup(); dropped != 1 {
		t.Errorf("expected 1 dropped, got %d", dropped)
	}
	if _, err := store.Get(old.ID); err == nil {
		t.Error("expected old session to be evicted")
	}
	if _, err := store.Get(fresh.ID); err != nil {
		t.Errorf("expected fresh session to remain, got %v", err)
	}
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	store := NewStore(time.Millisecond, 0)
	old := New("Old", "old.md", textSlides())
	old.UpdatedAt = time.Now().Add(-time.Second)
	store.Put(old)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for store.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if store.Len() != 0 {
		t.Errorf("expected janitor to evict expired session, %d remain", store.Len())
	}
}
