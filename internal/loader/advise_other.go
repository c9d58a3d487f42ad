// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package loader

import "github.com/edsrzf/mmap-go"

// adviseSequential is a no-op on platforms without madvise(2).
func adviseSequential(m mmap.MMap) {}
