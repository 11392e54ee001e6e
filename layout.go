package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/starstruct"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/testwork/testprep/envfile"
)

type Layout struct {
	ExtraDirs []string   `starlark:"extra_dirs"`
	Notify    notifyMode `starlark:"-"`
}

func defaultLayout() Layout {
	return Layout{
		ExtraDirs: []string{},
		Notify:    notifyOnRepair,
	}
}

// Targets returns every output directory the workspace needs, relative to
// the base directory. The standard pair comes first, in fixed order.
func (l Layout) Targets() []string {
	return append(defaultTargets(), l.ExtraDirs...)
}

// loadLayout reads the layout file in baseDir if there is one.
// Variables for "${VAR}" references in extra directory entries come from the
// OS environment merged with the workspace env file (file wins).
func loadLayout(baseDir string) (Layout, error) {
	layout := defaultLayout()

	env := envfile.OS()
	fileEnv, err := envfile.Load(filepath.Join(baseDir, envFileName), env)
	if err == nil {
		env = envfile.Merge(env, fileEnv)
	} else if !os.IsNotExist(err) {
		return layout, fmt.Errorf("failed to load env file: %w", err)
	}

	layoutPath := filepath.Join(baseDir, layoutFileName)
	if _, err := os.Stat(layoutPath); os.IsNotExist(err) {
		return layout, nil
	} else if err != nil {
		return layout, err
	}

	envDict := starlark.NewDict(len(env))
	for k, v := range env {
		if err := envDict.SetKey(starlark.String(k), starlark.String(v)); err != nil {
			return layout, fmt.Errorf("failed to set env dict key: %w", err)
		}
	}

	predeclared := starlark.StringDict{
		baseDirVar: starlark.String(baseDir),
		envVar:     envDict,
	}

	thread := &starlark.Thread{Name: "layout"}
	globals, err := starlark.ExecFileOptions(
		&syntax.FileOptions{},
		thread,
		layoutPath,
		nil,
		predeclared,
	)
	if err != nil {
		return layout, err
	}

	if err := starstruct.FromStarlark(starlark.StringDict(globals), &layout); err != nil {
		return layout, fmt.Errorf("failed to convert layout to struct: %w", err)
	}

	notifyString := ""
	notifyValue, exists := globals[notifyVar]
	if exists {
		value, ok := notifyValue.(starlark.String)
		if !ok {
			return layout, fmt.Errorf("%q must be Starlark string", notifyVar)
		}

		notifyString = value.GoString()
	}

	layout.Notify, err = parseNotifyMode(notifyString)
	if err != nil {
		return layout, err
	}

	for i, dir := range layout.ExtraDirs {
		expanded, err := envfile.Expand(dir, env)
		if err != nil {
			return layout, fmt.Errorf("bad %q entry %q: %w", extraDirsVar, dir, err)
		}

		cleaned := filepath.Clean(expanded)
		if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." ||
			strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
			return layout, fmt.Errorf("%q entry %q escapes the base directory", extraDirsVar, dir)
		}

		layout.ExtraDirs[i] = cleaned
	}

	return layout, nil
}
