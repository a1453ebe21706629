package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
	"github.com/MacroPower/kluars/pkg/script"
)

func evalString(t *testing.T, src string) lua.LValue {
	t.Helper()

	L := lua.NewState()
	t.Cleanup(L.Close)

	require.NoError(t, L.DoString(src))

	ret := L.Get(-1)
	L.Pop(1)

	return ret
}

func TestFromLua(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src  string
		want document.Value
	}{
		"nil": {
			src:  "return nil",
			want: document.Null(),
		},
		"bool": {
			src:  "return true",
			want: document.NewBool(true),
		},
		"number": {
			src:  "return 1.5",
			want: document.NewNumber(1.5),
		},
		"string": {
			src:  `return "x"`,
			want: document.NewString("x"),
		},
		"sequence": {
			src:  `return {"a", "b"}`,
			want: document.NewList(document.NewString("a"), document.NewString("b")),
		},
		"empty table": {
			src:  `return {}`,
			want: document.FromMapping(document.NewMapping()),
		},
		"mixed table": {
			src: `return {"a", x = 1}`,
			want: func() document.Value {
				m := document.NewMapping()
				m.Set("1", document.NewString("a"))
				m.Set("x", document.NewNumber(1))

				return document.FromMapping(m)
			}(),
		},
		"float and bool keys": {
			src: `return {[2.5] = "f", [true] = "t"}`,
			want: func() document.Value {
				m := document.NewMapping()
				m.Set("2.5", document.NewString("f"))
				m.Set("true", document.NewString("t"))

				return document.FromMapping(m)
			}(),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := script.FromLua(evalString(t, tc.src))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s", got)
		})
	}
}

func TestFromLua_KeepsKeyOrder(t *testing.T) {
	t.Parallel()

	src := `return {
  kind = "Pod",
  apiVersion = "v1",
  metadata = { name = "nginx", namespace = "web", labels = { app = "nginx" } },
  spec = {},
  status = {},
  extra = "x",
}`

	for range 50 {
		got, err := script.FromLua(evalString(t, src))
		require.NoError(t, err)

		root, err := got.AsMapping()
		require.NoError(t, err)
		require.Equal(t, []string{"kind", "apiVersion", "metadata", "spec", "status", "extra"}, root.Keys())

		meta, ok := root.Get("metadata")
		require.True(t, ok)

		metaMapping, err := meta.AsMapping()
		require.NoError(t, err)
		require.Equal(t, []string{"name", "namespace", "labels"}, metaMapping.Keys())
	}
}

func TestFromLua_MixedTableOrder(t *testing.T) {
	t.Parallel()

	for range 20 {
		got, err := script.FromLua(evalString(t, `local t = {"a", "b"}; t.z = 1; t.y = 2; t[10] = 3; return t`))
		require.NoError(t, err)

		m, err := got.AsMapping()
		require.NoError(t, err)
		require.Equal(t, []string{"1", "2", "z", "y", "10"}, m.Keys())
	}
}

func TestFromLua_SharedTableIsNotACycle(t *testing.T) {
	t.Parallel()

	got, err := script.FromLua(evalString(t, `local l = {app = "nginx"}; return {a = l, b = l}`))
	require.NoError(t, err)

	app, err := got.StringField("b", "app")
	require.NoError(t, err)
	assert.Equal(t, "nginx", app)
}

func TestFromLua_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src     string
		wantMsg string
	}{
		"cycle": {
			src:     `local t = {}; t.self = t; return t`,
			wantMsg: "itself",
		},
		"function": {
			src:     `return {f = print}`,
			wantMsg: "$.f",
		},
		"table key": {
			src:     `return {[{}] = 1}`,
			wantMsg: "unsupported key type",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := script.FromLua(evalString(t, tc.src))
			require.ErrorIs(t, err, kluarserrors.ErrEvaluation)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
