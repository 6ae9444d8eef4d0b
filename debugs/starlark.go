package debugs

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func toStarlarkValue(name string, v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)

	case map[string]string:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), starlark.String(val))
		}
		return d

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue("", value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue("", iter.Key().Interface()),
				toStarlarkValue("", iter.Value().Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(name, elem.Interface())

	case reflect.Func:
		return makeFunc(name, value)

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

var errorType = reflect.TypeFor[error]()

// makeFunc builds a builtin with starlarkutil. A trailing error result is
// raised in starlark instead of returned.
func makeFunc(name string, fn reflect.Value) *starlark.Builtin {
	fnType := fn.Type()
	numOut := fnType.NumOut()
	if numOut == 0 || fnType.Out(numOut-1) != errorType {
		builtin := starlarkutil.MakeFunc(name, fn.Interface())
		return starlark.NewBuiltin(name, func(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			ret, err := builtin.CallInternal(thread, args, kwargs)
			if err != nil {
				return nil, err
			}
			return orNone(ret), nil
		})
	}

	ins := make([]reflect.Type, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		ins = append(ins, fnType.In(i))
	}
	outs := make([]reflect.Type, 0, numOut-1)
	for i := range numOut - 1 {
		outs = append(outs, fnType.Out(i))
	}

	// lastErr belongs to the call holding mu
	var mu sync.Mutex
	var lastErr error
	stripped := reflect.MakeFunc(
		reflect.FuncOf(ins, outs, fnType.IsVariadic()),
		func(args []reflect.Value) []reflect.Value {
			var rets []reflect.Value
			if fnType.IsVariadic() {
				rets = fn.CallSlice(args)
			} else {
				rets = fn.Call(args)
			}
			if err, ok := rets[numOut-1].Interface().(error); ok && err != nil {
				lastErr = err
			}
			return rets[:numOut-1]
		},
	)
	builtin := starlarkutil.MakeFunc(name, stripped.Interface())

	return starlark.NewBuiltin(name, func(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		mu.Lock()
		defer mu.Unlock()
		lastErr = nil
		ret, err := builtin.CallInternal(thread, args, kwargs)
		if lastErr != nil {
			return nil, lastErr
		}
		if err != nil {
			return nil, err
		}
		return orNone(ret), nil
	})
}

func orNone(v starlark.Value) starlark.Value {
	if v == nil {
		return starlark.None
	}
	return v
}
