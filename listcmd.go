package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/repr"
)

type ListCmd struct {
	Debug bool `help:"Dump the resolved layout"`
}

func (l *ListCmd) Run(config Config) error {
	layout, err := loadLayout(config.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	if l.Debug {
		layoutRepr := repr.String(layout, repr.Indent("\t"), repr.OmitEmpty(false))
		fmt.Fprintf(os.Stderr, "%s\n", layoutRepr)
	}

	for _, target := range layout.Targets() {
		fmt.Println(filepath.Join(config.BaseDir, target))
	}

	return nil
}
