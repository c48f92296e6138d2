package store

import (
	"fmt"
	"time"
)

// table keeps records of one kind in insertion order. Callers hold the Store lock.
type table[T any] struct {
	kind  string
	order []string
	rows  map[string]T
	key   func(T) string
	stamp func(T) time.Time
	clone func(T) T
}

func newTable[T any](kind string, key func(T) string, stamp func(T) time.Time, clone func(T) T) *table[T] {
	return &table[T]{
		kind:  kind,
		rows:  make(map[string]T),
		key:   key,
		stamp: stamp,
		clone: clone,
	}
}

func (t *table[T]) len() int { return len(t.order) }

func (t *table[T]) register(r T) {
	k := t.key(r)
	if _, ok := t.rows[k]; ok {
		return
	}
	t.order = append(t.order, k)
	t.rows[k] = t.clone(r)
}

func (t *table[T]) upsert(r T) error {
	k := t.key(r)
	if k == "" {
		return fmt.Errorf("%s record without key", t.kind)
	}
	old, ok := t.rows[k]
	if !ok {
		t.order = append(t.order, k)
	} else if t.stamp(r).Before(t.stamp(old)) {
		return fmt.Errorf("%s %s updated at %s, stored %s: %w", t.kind, k,
			t.stamp(r).Format(time.RFC3339Nano), t.stamp(old).Format(time.RFC3339Nano), ErrStaleRecord)
	}
	t.rows[k] = t.clone(r)
	return nil
}

func (t *table[T]) get(k string) (T, bool) {
	r, ok := t.rows[k]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(r), true
}

func (t *table[T]) page(offset, limit int) ([]T, int) {
	total := len(t.order)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []T{}, total
	}
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}
	out := make([]T, 0, end-offset)
	for _, k := range t.order[offset:end] {
		out = append(out, t.clone(t.rows[k]))
	}
	return out, total
}
