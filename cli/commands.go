package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	LogLevel  string `help:"Diagnostics written to stderr (${enum})." enum:"debug,info,warn,error" default:"warn"`
}

type Commands struct {
	Version kong.VersionFlag `help:"Show version information."`
	Globals

	Check  CheckCmd  `cmd:"" default:"withargs" help:"Check the balance assertions of a GnuCash book (default command)."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging GnuCash books."`
}

func buildVersion() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, CommitSHA)
}
