package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Setup  SetupCmd  `cmd:"" help:"Create missing output directories"`
	Status StatusCmd `cmd:"" help:"Show the workspace and recent runs"`
	List   ListCmd   `cmd:"" help:"List target directories"`
	Clean  CleanCmd  `cmd:"" help:"Empty the output directories"`
	Watch  WatchCmd  `cmd:"" help:"Re-create output directories deleted while tests run"`
	Log    LogCmd    `cmd:"" help:"Show the application log"`

	Version   VersionFlag `short:"V" help:"Print version number and exit"`
	BaseDir   string      `help:"Path to the directory to prepare" default:"." type:"path"`
	StateRoot string      `help:"Path to state directory" default:"${defaultStateRoot}" type:"path"`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error {
	return nil
}

func (v VersionFlag) IsBool() bool {
	return true
}

func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(version)
	app.Exit(0)

	return nil
}

type logWriter struct {
	logPath string
}

func (writer *logWriter) Write(bytes []byte) (int, error) {
	formattedMsg := fmt.Sprintf("[%s] %s", time.Now().Format(timestampFormat), string(bytes))

	if writer.logPath != "" {
		f, err := os.OpenFile(writer.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerms)
		if err == nil {
			_, _ = f.WriteString(formattedMsg)
			f.Close()
		}
	}

	return fmt.Print(formattedMsg)
}

func main() {
	log.SetFlags(0)

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name(appName),
		kong.Description("Prepare test output directories."),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Exit(func(code int) {
			if code == 1 {
				code = 2
			}

			os.Exit(code)
		}),
		kong.Vars{
			"defaultLogLines":  strconv.Itoa(defaultLogLines),
			"defaultRunsShown": strconv.Itoa(defaultRunsShown),
			"defaultStateRoot": defaultStateRoot,
		},
	)

	config := Config{
		BaseDir:   cli.BaseDir,
		StateRoot: cli.StateRoot,
	}

	if err := os.MkdirAll(config.StateRoot, dirPerms); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create state directory: %v\n", err)
		os.Exit(1)
	}

	log.SetOutput(&logWriter{logPath: filepath.Join(config.StateRoot, appLogFileName)})

	err := ctx.Run(config)
	if err != nil {
		log.Fatal(err)
	}
}
