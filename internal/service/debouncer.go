package service

import (
	"sync"
	"time"
)

// Debouncer откладывает вызов на delay; новый вызов с тем же ключом отменяет ожидающий
type Debouncer struct {
	delay  time.Duration
	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[int64]*time.Timer),
	}
}

// Trigger планирует fn для ключа (telegram id администратора)
func (d *Debouncer) Trigger(key int64, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.timers[key] == timer
		if current {
			delete(d.timers, key)
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
	d.timers[key] = timer
}

// Cancel отменяет ожидающий вызов, например при закрытии мастера
func (d *Debouncer) Cancel(key int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Stop отменяет все ожидающие вызовы
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
