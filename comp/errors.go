// comp/errors.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package comp

import "errors"

var ErrNoTask = errors.New("No task provided")
