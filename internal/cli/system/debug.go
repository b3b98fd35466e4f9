package system

import (
	"github.com/jrr00064/habit-tracker/internal/cli"
)

type DebugCmd struct {
	Path DebugPathCmd `cmd:"" help:"Show the store location."`
	Dump DebugDumpCmd `cmd:"" help:"Dump the stored document."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	return ctx.Render(cli.OutputJSON, map[string]string{"path": ctx.Store.GetConfigPath()}, nil)
}

type DebugDumpCmd struct {
	Output string `help:"Output format." enum:"json,yaml" default:"json"`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return err
	}
	return ctx.Render(cmd.Output, state, nil)
}
