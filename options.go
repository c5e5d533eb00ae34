// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "github.com/go-dex/dexparser/log"

// defaultMaxAnnotationDepth bounds VALUE_ARRAY / VALUE_ANNOTATION nesting
// when Options.MaxAnnotationDepth is left at its zero value.
const defaultMaxAnnotationDepth = 64

// Options configures how a DexFile is opened and parsed.
type Options struct {
	// Fast stops after the raw pools and the class_def_item table are
	// resolved, skipping per-class data entirely (fields, methods, code,
	// debug info, annotations, static values). Useful for callers that
	// only need the class index (descriptors, access flags,
	// superclass/interfaces).
	Fast bool

	// SkipCodeItems resolves full class data (fields, methods,
	// annotations) but leaves EncodedMethod.Code nil, skipping the
	// code_item body and its debug info. Unlike Fast, the rest of the
	// class is still resolved.
	SkipCodeItems bool

	// MaxAnnotationDepth bounds how deeply VALUE_ARRAY and
	// VALUE_ANNOTATION encoded values may nest before parsing fails,
	// guarding against a crafted file driving the recursive decoder
	// arbitrarily deep. Zero means defaultMaxAnnotationDepth.
	MaxAnnotationDepth int

	// MaxStringCacheSize caps how many resolved strings the resolver
	// memoizes by index. Zero means unbounded, memoizing every string
	// touched during Parse, which is the common case since most strings
	// are referenced from multiple pools. A positive value stops
	// memoizing once the cache holds that many entries; nothing is
	// evicted, and an index that was not cached is re-read from the
	// string pool each time it is resolved.
	MaxStringCacheSize int

	// Logger receives an Error-level message for a class_def_item that
	// fails to resolve, just before Parse returns that failure. A nil
	// Logger discards it.
	Logger log.Logger
}

func (o *Options) orDefault() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.MaxAnnotationDepth == 0 {
		cp := *o
		cp.MaxAnnotationDepth = defaultMaxAnnotationDepth
		return &cp
	}
	return o
}
