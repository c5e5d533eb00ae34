// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// parseAnnotationSet reads an annotation_set_item at off: a count
// followed by that many offsets, each pointing at an annotation_item.
func (rs *resolver) parseAnnotationSet(off uint32) (*AnnotationSet, error) {
	if off == 0 {
		return nil, nil
	}
	c := rs.raw.c.at(int64(off))
	size, err := c.readU32()
	if err != nil {
		return nil, err
	}
	set := &AnnotationSet{Annotations: make([]*Annotation, 0, size)}
	for i := uint32(0); i < size; i++ {
		annOff, err := c.readU32()
		if err != nil {
			return nil, err
		}
		ann, err := rs.parseAnnotationItem(annOff)
		if err != nil {
			return nil, err
		}
		set.Annotations = append(set.Annotations, ann)
	}
	return set, nil
}

// parseAnnotationItem reads an annotation_item: a visibility byte
// followed by an encoded_annotation.
func (rs *resolver) parseAnnotationItem(off uint32) (*Annotation, error) {
	c := rs.raw.c.at(int64(off))
	vis, err := c.readU8()
	if err != nil {
		return nil, err
	}
	raw, err := parseEncodedAnnotation(c, 0, rs.maxAnnotationDepth)
	if err != nil {
		return nil, err
	}
	return rs.resolveAnnotation(raw, Visibility(vis))
}

// parseAnnotationSetRefList reads an annotation_set_ref_list, used to
// attach one annotation set per formal parameter: a count followed by
// that many offsets to annotation_set_item (0 meaning "no annotations on
// this parameter").
func (rs *resolver) parseAnnotationSetRefList(off uint32) ([]*AnnotationSet, error) {
	if off == 0 {
		return nil, nil
	}
	c := rs.raw.c.at(int64(off))
	size, err := c.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]*AnnotationSet, size)
	for i := range out {
		setOff, err := c.readU32()
		if err != nil {
			return nil, err
		}
		if out[i], err = rs.parseAnnotationSet(setOff); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseAnnotationsDirectory reads an annotations_directory_item: a class
// annotation set plus parallel (index, annotations) lists for fields,
// methods, and method parameters.
func (rs *resolver) parseAnnotationsDirectory(off uint32) (*AnnotationsDirectory, error) {
	c := rs.raw.c.at(int64(off))

	classAnnOff, err := c.readU32()
	if err != nil {
		return nil, err
	}
	fieldsSize, err := c.readU32()
	if err != nil {
		return nil, err
	}
	methodsSize, err := c.readU32()
	if err != nil {
		return nil, err
	}
	paramsSize, err := c.readU32()
	if err != nil {
		return nil, err
	}

	dir := &AnnotationsDirectory{}
	if dir.ClassAnnotations, err = rs.parseAnnotationSet(classAnnOff); err != nil {
		return nil, err
	}

	dir.FieldAnnotations = make([]FieldAnnotations, fieldsSize)
	for i := range dir.FieldAnnotations {
		fieldIdx, err := c.readU32()
		if err != nil {
			return nil, err
		}
		setOff, err := c.readU32()
		if err != nil {
			return nil, err
		}
		field, err := rs.resolveField(fieldIdx)
		if err != nil {
			return nil, err
		}
		set, err := rs.parseAnnotationSet(setOff)
		if err != nil {
			return nil, err
		}
		dir.FieldAnnotations[i] = FieldAnnotations{Field: field, Annotations: set}
	}

	dir.MethodAnnotations = make([]MethodAnnotations, methodsSize)
	for i := range dir.MethodAnnotations {
		methodIdx, err := c.readU32()
		if err != nil {
			return nil, err
		}
		setOff, err := c.readU32()
		if err != nil {
			return nil, err
		}
		method, err := rs.resolveMethod(methodIdx)
		if err != nil {
			return nil, err
		}
		set, err := rs.parseAnnotationSet(setOff)
		if err != nil {
			return nil, err
		}
		dir.MethodAnnotations[i] = MethodAnnotations{Method: method, Annotations: set}
	}

	dir.ParameterAnnotations = make([]ParameterAnnotations, paramsSize)
	for i := range dir.ParameterAnnotations {
		methodIdx, err := c.readU32()
		if err != nil {
			return nil, err
		}
		listOff, err := c.readU32()
		if err != nil {
			return nil, err
		}
		method, err := rs.resolveMethod(methodIdx)
		if err != nil {
			return nil, err
		}
		sets, err := rs.parseAnnotationSetRefList(listOff)
		if err != nil {
			return nil, err
		}
		dir.ParameterAnnotations[i] = ParameterAnnotations{Method: method, Annotations: sets}
	}

	return dir, nil
}
