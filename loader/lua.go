package loader

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	lua "github.com/yuin/gopher-lua"
)

// worldGlobal is read when a Lua document assigns the world table to a
// global instead of returning it.
const worldGlobal = "world"

// decodeLua runs the chunk at path in a sandboxed VM and decodes the world
// table it returns. The VM is discarded afterwards.
func decodeLua(path string) (*document, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("executing %s: %w", path, err)
	}

	var tbl *lua.LTable
	if L.GetTop() > 0 {
		tbl, _ = L.Get(-1).(*lua.LTable)
	}
	if tbl == nil {
		tbl, _ = L.GetGlobal(worldGlobal).(*lua.LTable)
	}
	if tbl == nil {
		return nil, fmt.Errorf("executing %s: chunk must return the world table or set the %q global", path, worldGlobal)
	}

	var doc document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "yaml",
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := dec.Decode(toGoValue(tbl)); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &doc, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the document.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring", "require",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
}

// toGoValue converts a Lua value to a Go value recursively. Tables with
// sequential integer keys become slices; an empty table becomes nil so it
// decodes as either an empty list or an empty map.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		if len(m) == 0 {
			return nil
		}
		return m
	default:
		return nil
	}
}
