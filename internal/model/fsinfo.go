// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which links a parsed schedule back to
// the file it came from.
package model

import (
	"os"
	"time"
)

// FSInfo records where a schedule was loaded from.
type FSInfo struct {
	FilePath string
	ModTime  time.Time
}

// NewFSInfo creates an FSInfo for filePath. The modification time is left
// zero when the file cannot be stat'ed, e.g. for in-memory sources.
func NewFSInfo(filePath string) *FSInfo {
	info := &FSInfo{FilePath: filePath}
	if st, err := os.Stat(filePath); err == nil {
		info.ModTime = st.ModTime()
	}
	return info
}
