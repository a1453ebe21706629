package script

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	slogcontext "github.com/veqryn/slog-context"
	lua "github.com/yuin/gopher-lua"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// Evaluate runs env's values script (if any), assigns env's globals, then
// runs the entry script and converts its return value into a document tree.
// The entry script must return a table.
//
// Scripts run without a sandbox: they may read the environment and the
// filesystem. The interpreter stops early only if ctx is cancelled.
func Evaluate(ctx context.Context, env *Environment) (document.Value, error) {
	L := lua.NewState()
	defer L.Close()

	L.SetContext(ctx)

	logger := slogcontext.FromCtx(ctx).With("script", env.Name())
	L.SetGlobal("print", L.NewFunction(printer(logger)))

	if env.SearchRoot != "" {
		addSearchRoot(L, env.SearchRoot)
	}

	if env.ValuesPath != "" {
		logger.Debug("running values script", "path", env.ValuesPath)

		if err := L.DoFile(env.ValuesPath); err != nil {
			return document.Value{}, fmt.Errorf("%w: %s: %w", kluarserrors.ErrEvaluation, env.ValuesPath, err)
		}
	}

	for _, g := range env.Globals {
		L.SetGlobal(g.Key, lua.LString(g.Value))
	}

	fn, err := L.LoadFile(env.ScriptPath)
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %s: %w", kluarserrors.ErrEvaluation, env.ScriptPath, err)
	}

	L.Push(fn)

	if err := L.PCall(0, 1, nil); err != nil {
		return document.Value{}, fmt.Errorf("%w: %s: %w", kluarserrors.ErrEvaluation, env.ScriptPath, err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	if ret.Type() != lua.LTTable {
		return document.Value{}, fmt.Errorf("%w: %s: script must return a table, got %s",
			kluarserrors.ErrEvaluation, env.ScriptPath, ret.Type())
	}

	v, err := FromLua(ret)
	if err != nil {
		return document.Value{}, fmt.Errorf("%s: %w", env.ScriptPath, err)
	}

	return v, nil
}

// addSearchRoot prepends root to package.path so require("name") resolves
// root/name.lua and root/name/init.lua.
func addSearchRoot(L *lua.LState, root string) {
	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}

	current := lua.LVAsString(L.GetField(pkg, "path"))
	paths := []string{
		filepath.Join(root, "?.lua"),
		filepath.Join(root, "?", EntryFile),
	}

	if current != "" {
		paths = append(paths, current)
	}

	L.SetField(pkg, "path", lua.LString(strings.Join(paths, ";")))
}

// printer replaces the script's print so output goes to the log stream
// instead of stdout, which carries rendered manifests.
func printer(logger *slog.Logger) lua.LGFunction {
	return func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}

		logger.Info(strings.Join(parts, "\t"))

		return 0
	}
}
