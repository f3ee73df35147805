package catalog

import "testing"

func TestSearchMask(t *testing.T) {
	c := Default()
	got := c.Search("mask")
	if len(got) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(got))
	}
	if got[0].Title != "Traditional Mask" {
		t.Fatalf("expected Traditional Mask, got %s", got[0].Title)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	c := Default()
	if got := c.Search("MASK"); len(got) != 1 || got[0].Title != "Traditional Mask" {
		t.Fatalf("uppercase query: %+v", got)
	}
}

func TestSearchMatchesCategory(t *testing.T) {
	c := Default()
	got := c.Search("jewellery")
	if len(got) != 2 {
		t.Fatalf("expected 2 jewellery products, got %d", len(got))
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	c := Default()
	if got, want := len(c.Search("")), len(c.List()); got != want {
		t.Fatalf("expected %d products, got %d", want, got)
	}
	if got, want := len(c.Search("   ")), len(c.List()); got != want {
		t.Fatalf("whitespace query: expected %d products, got %d", want, got)
	}
}

func TestSearchNoMatch(t *testing.T) {
	c := Default()
	if got := c.Search("zzz-no-such-product"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestGet(t *testing.T) {
	c := Default()
	p, ok := c.Get(2)
	if !ok || p.Title != "Traditional Mask" {
		t.Fatalf("get 2: ok=%v p=%+v", ok, p)
	}
	if _, ok := c.Get(999); ok {
		t.Fatal("expected miss for unknown id")
	}
}
