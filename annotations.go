// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Visibility says which consumers see an annotation: build tools only,
// the runtime via reflection, or the underlying system.
type Visibility uint8

const (
	VisibilityBuild   Visibility = 0x00
	VisibilityRuntime Visibility = 0x01
	VisibilitySystem  Visibility = 0x02
)

func (v Visibility) String() string {
	switch v {
	case VisibilityBuild:
		return "BUILD"
	case VisibilityRuntime:
		return "RUNTIME"
	case VisibilitySystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// AnnotationElement is one resolved name/value pair inside an annotation.
type AnnotationElement struct {
	Name  *StringData
	Value *EncodedValue
}

// Annotation is a resolved annotation_item: a visibility, the annotation
// type, and its elements.
type Annotation struct {
	Visibility Visibility
	Type       *TypeIdentifier
	Elements   []AnnotationElement
}

// AnnotationSet is a resolved annotation_set_item: an unordered list of
// annotations, each of a distinct type.
type AnnotationSet struct {
	Annotations []*Annotation
}

// FieldAnnotations pairs a field with its annotation set.
type FieldAnnotations struct {
	Field       *Field
	Annotations *AnnotationSet
}

// MethodAnnotations pairs a method with its annotation set.
type MethodAnnotations struct {
	Method      *Method
	Annotations *AnnotationSet
}

// ParameterAnnotations pairs a method with one annotation set per formal
// parameter (in declaration order; a nil entry means no annotations on
// that parameter).
type ParameterAnnotations struct {
	Method      *Method
	Annotations []*AnnotationSet
}

// AnnotationsDirectory is a resolved annotations_directory_item: every
// annotation attached anywhere within a single class.
type AnnotationsDirectory struct {
	ClassAnnotations     *AnnotationSet
	FieldAnnotations      []FieldAnnotations
	MethodAnnotations     []MethodAnnotations
	ParameterAnnotations  []ParameterAnnotations
}
