package scene

// table is a slot arena. Slot 0 is reserved so the zero handle is invalid.
// Freed slots are not reused.
type table[T any] struct {
	slots []T
	live  []bool
	n     int
}

func (t *table[T]) add(v T) uint32 {
	if len(t.slots) == 0 {
		var zero T
		t.slots = append(t.slots, zero)
		t.live = append(t.live, false)
	}
	t.slots = append(t.slots, v)
	t.live = append(t.live, true)
	t.n++
	return uint32(len(t.slots) - 1)
}

func (t *table[T]) get(h uint32) (T, bool) {
	if int(h) >= len(t.slots) || !t.live[h] {
		var zero T
		return zero, false
	}
	return t.slots[h], true
}

func (t *table[T]) set(h uint32, v T) {
	t.slots[h] = v
}

func (t *table[T]) remove(h uint32) bool {
	if int(h) >= len(t.slots) || !t.live[h] {
		return false
	}
	var zero T
	t.slots[h] = zero
	t.live[h] = false
	t.n--
	return true
}

func (t *table[T]) each(fn func(uint32, T)) {
	for i, ok := range t.live {
		if ok {
			fn(uint32(i), t.slots[i])
		}
	}
}

func (t *table[T]) len() int { return t.n }
