// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// byteOrder is the element layout in GPU memory.
var byteOrder = binary.LittleEndian

// wordSize is the encoded size of int, uint and uintptr elements.
const wordSize = 8

// isWord reports whether T is stored as a 64-bit word. binary.Size gives
// no fixed size for the platform-sized integer kinds.
func isWord[T any]() (signed, ok bool) {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int:
		return true, true
	case reflect.Uint, reflect.Uintptr:
		return false, true
	}
	return false, false
}

// elementSize returns the encoded size of T.
func elementSize[T any]() (int, error) {
	if _, ok := isWord[T](); ok {
		return wordSize, nil
	}
	var zero T
	n := binary.Size(zero)
	if n <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrElementType, reflect.TypeFor[T]())
	}
	return n, nil
}

// appendElements encodes every value of vs onto dst.
func appendElements[T any](dst []byte, vs ...T) ([]byte, error) {
	if signed, ok := isWord[T](); ok {
		for _, v := range vs {
			rv := reflect.ValueOf(v)
			if signed {
				dst = byteOrder.AppendUint64(dst, uint64(rv.Int()))
			} else {
				dst = byteOrder.AppendUint64(dst, rv.Uint())
			}
		}
		return dst, nil
	}
	for _, v := range vs {
		var err error
		dst, err = binary.Append(dst, byteOrder, v)
		if err != nil {
			return nil, fmt.Errorf("buffer: encode %v: %w", reflect.TypeFor[T](), err)
		}
	}
	return dst, nil
}

// decodeElements decodes n elements of size elemSize from src.
func decodeElements[T any](src []byte, n, elemSize int) ([]T, error) {
	if len(src) < n*elemSize {
		return nil, fmt.Errorf("buffer: short read: %d bytes, want %d", len(src), n*elemSize)
	}
	out := make([]T, n)
	if signed, ok := isWord[T](); ok {
		for i := range out {
			w := byteOrder.Uint64(src[i*elemSize:])
			rv := reflect.ValueOf(&out[i]).Elem()
			if signed {
				rv.SetInt(int64(w))
			} else {
				rv.SetUint(w)
			}
		}
		return out, nil
	}
	for i := range out {
		if _, err := binary.Decode(src[i*elemSize:(i+1)*elemSize], byteOrder, &out[i]); err != nil {
			return nil, fmt.Errorf("buffer: decode %v: %w", reflect.TypeFor[T](), err)
		}
	}
	return out, nil
}
