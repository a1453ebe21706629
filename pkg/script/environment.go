package script

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// EntryFile is the script evaluated when the input path is a directory.
const EntryFile = "init.lua"

// Global is one KEY=VALUE assignment made visible to the script as a global
// string variable.
type Global struct {
	Key   string
	Value string
}

// ParseGlobal parses s as KEY=VALUE, splitting on the first "=". The value
// may itself contain "=" and may be empty.
func ParseGlobal(s string) (Global, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return Global{}, fmt.Errorf("%w: invalid KEY=value: no `=` found in `%s`", kluarserrors.ErrConfiguration, s)
	}

	return Global{Key: key, Value: value}, nil
}

// ParseGlobals parses each element of args with [ParseGlobal], keeping order.
func ParseGlobals(args []string) ([]Global, error) {
	globals := make([]Global, 0, len(args))
	for _, a := range args {
		g, err := ParseGlobal(a)
		if err != nil {
			return nil, err
		}

		globals = append(globals, g)
	}

	return globals, nil
}

// Environment is the prepared evaluation context for one script run.
type Environment struct {
	// ScriptPath is the entry script to evaluate.
	ScriptPath string
	// SearchRoot, when set, is prepended to the module search path so the
	// script can require sibling modules.
	SearchRoot string
	// ValuesPath, when set, is executed before ScriptPath.
	ValuesPath string
	// Globals are assigned after ValuesPath runs, in order.
	Globals []Global
}

// NewEnvironment resolves path into an [Environment]. If path is a
// directory, its init.lua becomes the entry script and the directory becomes
// the module search root. A valuesPath that is not a regular file is ignored
// with a warning.
func NewEnvironment(path, valuesPath string, globals []Global) (*Environment, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: script path: %w", kluarserrors.ErrConfiguration, err)
	}

	env := &Environment{
		ScriptPath: path,
		Globals:    globals,
	}

	if fi.IsDir() {
		env.SearchRoot = path
		env.ScriptPath = filepath.Join(path, EntryFile)

		efi, err := os.Stat(env.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("%w: script path: %w", kluarserrors.ErrConfiguration, err)
		}

		if efi.IsDir() {
			return nil, fmt.Errorf("%w: script path: %s is a directory", kluarserrors.ErrConfiguration, env.ScriptPath)
		}
	}

	if valuesPath != "" {
		vfi, err := os.Stat(valuesPath)

		switch {
		case err == nil && vfi.Mode().IsRegular():
			env.ValuesPath = valuesPath
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: values path: %w", kluarserrors.ErrConfiguration, err)
		default:
			slog.Warn("ignoring values script, not a regular file", "path", valuesPath)
		}
	}

	return env, nil
}

// Name returns a short name for the entry script, used in logs.
func (e *Environment) Name() string {
	if e.SearchRoot != "" {
		return filepath.Base(e.SearchRoot) + "/" + EntryFile
	}

	return filepath.Base(e.ScriptPath)
}
