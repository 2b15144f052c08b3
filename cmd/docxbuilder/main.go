package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docxbuilder/cmd/docxbuilder/commands"
	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
	"git.home.luguber.info/inful/docxbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docxbuilder"),
		kong.Description("Build and edit Word documents from agents, manifests or the command line."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(commands.NewGlobal(), cli)
	if err == nil {
		return
	}

	var status commands.ExitStatus
	if errors.As(err, &status) {
		os.Exit(status.ExitCode())
	}
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
