// metrics/errors.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package metrics

import (
	"errors"
)

var (
	ErrInvalidConfig = errors.New("Invalid metrics configuration")
	ErrEmptyTable    = errors.New("Table has no samples")
)
