package services

import (
	"sort"
	"sync"
)

// accountLocks serializes balance mutation per account number. Transfers
// acquire both parties in sorted order so two opposing transfers cannot
// deadlock each other.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: map[string]*sync.Mutex{}}
}

func (l *accountLocks) get(accountNumber string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[accountNumber]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[accountNumber] = lock
	}

	return lock
}

// Acquire locks the given accounts and returns the release function.
func (l *accountLocks) Acquire(accountNumbers ...string) func() {
	unique := map[string]bool{}
	ordered := make([]string, 0, len(accountNumbers))

	for _, number := range accountNumbers {
		if !unique[number] {
			unique[number] = true
			ordered = append(ordered, number)
		}
	}

	sort.Strings(ordered)

	held := make([]*sync.Mutex, 0, len(ordered))
	for _, number := range ordered {
		lock := l.get(number)
		lock.Lock()
		held = append(held, lock)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
