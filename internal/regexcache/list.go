package regexcache

import "regexp"

type entry struct {
	key   string
	value *regexp.Regexp
}

type element struct {
	entry
	prev, next *element
}

// regexList is a doubly linked list with a sentinel root, ordered from most
// to least recently used.
type regexList struct {
	root element
	len  int
}

func newRegexList() *regexList {
	l := &regexList{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

func (l *regexList) front() *element {
	return l.root.next
}

func (l *regexList) back() *element {
	return l.root.prev
}

func (l *regexList) pushFront(e entry) *element {
	el := &element{entry: e}
	el.prev = &l.root
	el.next = l.root.next
	el.prev.next = el
	el.next.prev = el
	l.len++
	return el
}

func (l *regexList) remove(e *element) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
	l.len--
}

func (l *regexList) moveToFront(e *element) {
	if l.root.next == e {
		return
	}

	e.prev.next = e.next
	e.next.prev = e.prev

	e.prev = &l.root
	e.next = l.root.next
	e.prev.next = e
	e.next.prev = e
}
