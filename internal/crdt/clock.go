package crdt

import (
	"sync"
	"time"
)

// Clock монотонные часы для поля updatedAt. Две локальные мутации никогда
// не получают одинаковое время, даже если системные часы стоят на месте или
// идут назад. Значение усечено до миллисекунд, поэтому переживает JSON
// сериализацию без изменений.
type Clock struct {
	now  func() time.Time
	last time.Time
	mu   sync.Mutex
}

// NewClock создает часы поверх системного времени.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource создает часы с заданным источником времени.
// Используется для тестирования.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick возвращает следующий timestamp: max(now, last+1ms).
func (c *Clock) Tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UTC().Truncate(time.Millisecond)
	if !ts.After(c.last) {
		ts = c.last.Add(time.Millisecond)
	}
	c.last = ts
	return ts
}

// Observe сдвигает часы вперед по timestamp, полученному с другого устройства.
// Следующий Tick будет строго больше observed.
func (c *Clock) Observe(observed time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	observed = observed.UTC().Truncate(time.Millisecond)
	if observed.After(c.last) {
		c.last = observed
	}
}

// Now возвращает текущее время источника без продвижения часов.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}
