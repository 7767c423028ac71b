// Package layering overlays attribute snapshots: stronger layers keep their
// explicit values and weaker layers fill whatever is missing.
package layering

import "reflect"

// MergeLayers composes snapshots ordered from strongest to weakest and returns
// a detached copy. Maps merge key by key, slices are replaced wholesale and nil
// values (nil pointers, maps, slices or interfaces) fall through to weaker
// layers.
func MergeLayers[T any](layers ...T) T {
	var zero T
	if len(layers) == 0 {
		return zero
	}

	merged := cloneValue(reflect.ValueOf(layers[len(layers)-1]))
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergeValue(reflect.ValueOf(layers[i]), merged)
	}
	return asType[T](merged)
}

// Clone returns a deep copy of value. Unexported struct fields are left zero.
func Clone[T any](value T) T {
	return asType[T](cloneValue(reflect.ValueOf(value)))
}

func asType[T any](v reflect.Value) T {
	var zero T
	if !v.IsValid() {
		return zero
	}
	target := reflect.TypeOf(zero)
	if target == nil {
		// T is an interface type; the dynamic value is already what we want.
		if out, ok := v.Interface().(T); ok {
			return out
		}
		return zero
	}
	if v.Type() != target {
		out := reflect.New(target).Elem()
		out.Set(v.Convert(target))
		return out.Interface().(T)
	}
	return v.Interface().(T)
}

func mergeValue(strong, weak reflect.Value) reflect.Value {
	if !strong.IsValid() {
		return cloneValue(weak)
	}

	switch strong.Kind() {
	case reflect.Pointer:
		if strong.IsNil() {
			return fallback(strong, weak)
		}
		var weakElem reflect.Value
		if weak.IsValid() && weak.Kind() == reflect.Pointer && !weak.IsNil() && weak.Type() == strong.Type() {
			weakElem = weak.Elem()
		}
		out := reflect.New(strong.Type().Elem())
		out.Elem().Set(mergeValue(strong.Elem(), weakElem))
		return out
	case reflect.Interface:
		if strong.IsNil() {
			return fallback(strong, weak)
		}
		var weakElem reflect.Value
		if weak.IsValid() && weak.Kind() == reflect.Interface && !weak.IsNil() {
			weakElem = weak.Elem()
		}
		merged := mergeValue(strong.Elem(), weakElem)
		out := reflect.New(strong.Type()).Elem()
		out.Set(merged)
		return out
	case reflect.Struct:
		out := reflect.New(strong.Type()).Elem()
		sameType := weak.IsValid() && weak.Type() == strong.Type()
		for i := 0; i < strong.NumField(); i++ {
			field := out.Field(i)
			if !field.CanSet() {
				continue
			}
			var weakField reflect.Value
			if sameType {
				weakField = weak.Field(i)
			}
			field.Set(mergeValue(strong.Field(i), weakField))
		}
		return out
	case reflect.Map:
		if strong.IsNil() {
			return fallback(strong, weak)
		}
		out := reflect.MakeMapWithSize(strong.Type(), strong.Len())
		if weak.IsValid() && weak.Type() == strong.Type() && !weak.IsNil() {
			iter := weak.MapRange()
			for iter.Next() {
				out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
			}
		}
		iter := strong.MapRange()
		for iter.Next() {
			key := iter.Key()
			if existing := out.MapIndex(key); existing.IsValid() {
				out.SetMapIndex(key, mergeValue(iter.Value(), existing))
				continue
			}
			out.SetMapIndex(key, cloneValue(iter.Value()))
		}
		return out
	case reflect.Slice:
		if strong.IsNil() {
			return fallback(strong, weak)
		}
		return cloneValue(strong)
	default:
		return cloneValue(strong)
	}
}

// fallback returns a copy of weak when it can stand in for the nil strong
// value, otherwise the typed zero of strong.
func fallback(strong, weak reflect.Value) reflect.Value {
	if !weak.IsValid() || weak.Type() != strong.Type() {
		return reflect.Zero(strong.Type())
	}
	return cloneValue(weak)
}

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))
		return out
	case reflect.Interface:
		out := reflect.New(v.Type()).Elem()
		if v.IsNil() {
			return out
		}
		out.Set(cloneValue(v.Elem()))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			if field := out.Field(i); field.CanSet() {
				field.Set(cloneValue(v.Field(i)))
			}
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	default:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		return out
	}
}
