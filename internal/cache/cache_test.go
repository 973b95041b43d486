package cache

import "testing"

func TestEntityKey(t *testing.T) {
	if got := EntityKey("author", 7); got != "author:7" {
		t.Errorf("unexpected entity key %q", got)
	}
	if got := EntityKey("book", 123456); got != "book:123456" {
		t.Errorf("unexpected entity key %q", got)
	}
}

func TestPageKey(t *testing.T) {
	if got := PageKey("books", 2, 50); got != "books:page:2:limit:50" {
		t.Errorf("unexpected page key %q", got)
	}
	if got := PageKey("readers", 1, 10); got != "readers:page:1:limit:10" {
		t.Errorf("unexpected page key %q", got)
	}
}
