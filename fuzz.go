// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Fuzz is a go-fuzz entry point: it reports 1 when data decodes without
// error, 0 otherwise, so a fuzzer can tell a crash-worthy input apart
// from an expected rejection.
func Fuzz(data []byte) int {
	df, err := Decode(data, nil)
	if err != nil {
		return 0
	}
	_ = df
	return 1
}
