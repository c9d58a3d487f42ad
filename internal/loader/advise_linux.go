// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package loader

import (
	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel the mapping will be read mostly
// front-to-back, the access pattern of the linear header/line walk in
// LoadMmap, the way large-genome tools in the pack tune page-cache
// behaviour for big sequential scans.
func adviseSequential(m mmap.MMap) {
	_ = unix.Madvise([]byte(m), unix.MADV_SEQUENTIAL)
}
