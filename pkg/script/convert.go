package script

import (
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// FromLua converts a Lua value into a [document.Value].
//
// Tables whose keys are exactly 1..n become lists; every other table,
// including the empty table, becomes a mapping with keys converted to
// strings. Functions, userdata, threads and channels cannot be represented
// and produce an error naming the offending field.
func FromLua(lv lua.LValue) (document.Value, error) {
	c := converter{seen: map[*lua.LTable]bool{}}

	return c.convert(lv, "$")
}

type converter struct {
	seen map[*lua.LTable]bool
}

func (c converter) convert(lv lua.LValue, path string) (document.Value, error) {
	switch v := lv.(type) {
	case *lua.LNilType:
		return document.Null(), nil
	case lua.LBool:
		return document.NewBool(bool(v)), nil
	case lua.LNumber:
		return document.NewNumber(float64(v)), nil
	case lua.LString:
		return document.NewString(string(v)), nil
	case *lua.LTable:
		return c.table(v, path)
	default:
		return document.Value{}, fmt.Errorf("%w: %s: cannot convert %s to a document value",
			kluarserrors.ErrEvaluation, path, lv.Type())
	}
}

func (c converter) table(t *lua.LTable, path string) (document.Value, error) {
	if c.seen[t] {
		return document.Value{}, fmt.Errorf("%w: %s: table contains a reference to itself", kluarserrors.ErrEvaluation, path)
	}

	c.seen[t] = true
	defer delete(c.seen, t)

	n := sequenceLen(t)

	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		items := make([]document.Value, 0, n)
		for i := 1; i <= n; i++ {
			item, err := c.convert(t.RawGetInt(i), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return document.Value{}, err
			}

			items = append(items, item)
		}

		return document.NewList(items...), nil
	}

	// Next visits the array part, then hash keys in insertion order.
	m := document.NewMapping()

	for k, v := t.Next(lua.LNil); k != lua.LNil; k, v = t.Next(k) {
		key, err := keyString(k)
		if err != nil {
			return document.Value{}, fmt.Errorf("%w: %s: %w", kluarserrors.ErrEvaluation, path, err)
		}

		item, err := c.convert(v, path+"."+key)
		if err != nil {
			return document.Value{}, err
		}

		m.Set(key, item)
	}

	return document.FromMapping(m), nil
}

// sequenceLen returns the largest n such that keys 1..n are all present.
func sequenceLen(t *lua.LTable) int {
	n := 0
	for t.RawGetInt(n+1) != lua.LNil {
		n++
	}

	return n
}

func keyString(k lua.LValue) (string, error) {
	switch v := k.(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return document.NewNumber(float64(v)).String(), nil
	case lua.LBool:
		return strconv.FormatBool(bool(v)), nil
	default:
		return "", fmt.Errorf("unsupported key type %s", k.Type())
	}
}
