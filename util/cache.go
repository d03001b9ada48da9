// util/cache.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// CacheDir is the directory where derived objects (e.g. metrics tables
// computed from flight logs) are stored. If empty, a directory under the
// user's cache directory is used.
var CacheDir = ""

func fullCachePath(path string) (string, error) {
	if CacheDir != "" {
		return filepath.Join(CacheDir, path), nil
	}
	cd, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, "xcscore", "derived", path), nil
}

// ContentCachePath returns the cache path for an object of the given kind
// and encoding version derived from contents. Changing either the source
// contents or the version gives a new path, so stale objects are never
// returned; they are left for CacheCullObjects.
func ContentCachePath(kind string, version int, contents []byte) (string, error) {
	h, err := Hash(bytes.NewReader(contents))
	if err != nil {
		return "", err
	}
	return filepath.Join(kind, "v"+strconv.Itoa(version), hex.EncodeToString(h)+".msgpack.zst"), nil
}

// CacheStoreObject msgpack-encodes obj and stores it, zstd-compressed,
// under the given path relative to the cache directory.
func CacheStoreObject(path string, obj any) error {
	path, err := fullCachePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write to a temporary file so that concurrent readers never see a
	// partial object.
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(obj); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// CacheRetrieveObject decodes an object previously stored with
// CacheStoreObject into obj, returning the time it was stored.
func CacheRetrieveObject(path string, obj any) (time.Time, error) {
	path, err := fullCachePath(path)
	if err != nil {
		return time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return time.Time{}, err
	}

	zr, err := zstd.NewReader(f)
	if err != nil {
		return time.Time{}, err
	}
	defer zr.Close()

	return fi.ModTime(), msgpack.NewDecoder(zr).Decode(obj)
}

// CacheCullObjects removes cached objects, oldest first, until the total
// size of the cache is at most maxBytes. It returns the number of objects
// removed.
func CacheCullObjects(maxBytes int64) (int, error) {
	cacheDir, err := fullCachePath("")
	if err != nil {
		return 0, err
	}

	type object struct {
		path    string
		size    int64
		modTime time.Time
	}
	var objects []object
	var total int64

	err = filepath.WalkDir(cacheDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			objects = append(objects, object{path: path, size: info.Size(), modTime: info.ModTime()})
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slices.SortFunc(objects, func(a, b object) int { return a.modTime.Compare(b.modTime) })

	removed := 0
	for _, o := range objects {
		if total <= maxBytes {
			break
		}
		if err := os.Remove(o.path); err == nil {
			total -= o.size
			removed++
		}
	}
	return removed, nil
}
