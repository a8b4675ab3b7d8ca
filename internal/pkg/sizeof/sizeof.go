// Package sizeof estimates the shallow plus deep memory footprint of a
// value. The order cache uses it to reject entries over its per-entry
// size cap instead of counting entries alone.
package sizeof

import "reflect"

// SizeOf approximates the memory usage of v, following pointers,
// strings, slices and struct fields to count heap-allocated data.
func SizeOf(v any) int {
	visited := make(map[uintptr]bool)
	return sizeOf(reflect.ValueOf(v), visited)
}

func sizeOf(v reflect.Value, visited map[uintptr]bool) int {
	if !v.IsValid() {
		return 0
	}
	// visited guards against cycles through pointers.
	if v.CanAddr() {
		ptr := v.UnsafeAddr()
		if visited[ptr] {
			return 0
		}
		visited[ptr] = true
	}

	return int(v.Type().Size()) + heapData(v, visited)
}

// heapData counts data not stored inline with the value itself.
func heapData(v reflect.Value, visited map[uintptr]bool) int {
	if !v.IsValid() {
		return 0
	}

	switch v.Kind() {
	case reflect.Ptr:
		if !v.IsNil() {
			return sizeOf(v.Elem(), visited)
		}
	case reflect.String:
		return v.Len()
	case reflect.Slice:
		if !v.IsNil() {
			size := v.Cap() * int(v.Type().Elem().Size())
			for i := 0; i < v.Len(); i++ {
				size += heapData(v.Index(i), visited)
			}
			return size
		}
	case reflect.Struct:
		size := 0
		for i := 0; i < v.NumField(); i++ {
			size += heapData(v.Field(i), visited)
		}
		return size
	case reflect.Map:
		if !v.IsNil() {
			size := 0
			for _, key := range v.MapKeys() {
				size += sizeOf(key, visited)
				size += sizeOf(v.MapIndex(key), visited)
			}
			return size
		}
	}
	return 0
}
