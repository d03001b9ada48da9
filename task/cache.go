// task/cache.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"os"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xcscore/xcscore/log"
)

type cacheEntry struct {
	task    *Task
	modTime time.Time
}

// Cache holds recently decoded tasks keyed by path. An entry is reloaded
// if the file has been modified since it was decoded. It is safe for
// concurrent use.
type Cache struct {
	lru *expirable.LRU[string, cacheEntry]
	lg  *log.Logger
}

func NewCache(size int, ttl time.Duration, lg *log.Logger) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, cacheEntry](size, nil, ttl),
		lg:  lg,
	}
}

// Load returns the task at path, decoding it only if it is not cached or
// has changed on disk.
func (c *Cache) Load(path string) (*Task, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if e, ok := c.lru.Get(path); ok && e.modTime.Equal(fi.ModTime()) {
		c.lg.Debugf("%s: task cache hit", path)
		return e.task, nil
	}

	t, err := Load(path, c.lg)
	if err != nil {
		return nil, err
	}
	c.lg.Infof("%s: loaded task with %d turnpoints", path, len(t.Turnpoints))

	c.lru.Add(path, cacheEntry{task: t, modTime: fi.ModTime()})
	return t, nil
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) Purge() {
	c.lru.Purge()
}
