// util/resources.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// ReadFile returns the contents of the given file; if it's zstd
// compressed (i.e., has a ".zst" extension), the contents are
// decompressed transparently.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return b, nil
	}

	zr, err := zstd.NewReader(bytes.NewReader(b), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer zr.Close()

	if b, err = io.ReadAll(zr); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// IsCompressed reports whether ReadFile will decompress the given file.
func IsCompressed(path string) bool {
	return filepath.Ext(path) == ".zst"
}

// TrimCompressedExt returns path without a trailing ".zst", so that
// "day1.igc.zst" can be treated like "day1.igc".
func TrimCompressedExt(path string) string {
	if IsCompressed(path) {
		return path[:len(path)-len(".zst")]
	}
	return path
}

// WriteCompressed writes b to path with zstd compression.
func WriteCompressed(path string, b []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		f.Close()
		return err
	}
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
