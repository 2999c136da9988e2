// Command bitfieldctl inspects, builds and aggregates hex encoded attester bitfields.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/shardvote/shared/logutil"
	"github.com/prysmaticlabs/shardvote/shared/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "bitfieldctl")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bitfieldctl"
	app.Usage = "A command line utility for attester vote bitfields"
	app.Version = version.GetVersion()
	app.Flags = globalFlags()
	app.Before = func(ctx *cli.Context) error {
		if err := logutil.ConfigureLogging(logFormat, ctx.String(verbosityFlag)); err != nil {
			return err
		}
		if logFile := ctx.String(logFileFlag); logFile != "" {
			if err := logutil.ConfigurePersistentLogging(logFile, logFormat); err != nil {
				return errors.Wrap(err, "failed to configure persistent logging")
			}
		}
		log.WithFields(version.Build().Fields()).Debug("Starting bitfieldctl")
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:   "empty",
			Usage:  "Print an empty bitfield for a committee",
			Flags:  []cli.Flag{newParticipantsFlag()},
			Action: emptyAction,
		},
		{
			Name:   "mark",
			Usage:  "Record attester votes in a bitfield",
			Flags:  []cli.Flag{newBitsFlag(), newIndexFlag()},
			Action: markAction,
		},
		{
			Name:   "inspect",
			Usage:  "Describe the votes of a bitfield",
			Flags:  []cli.Flag{newBitsFlag(), newConfigFileFlag()},
			Action: inspectAction,
		},
		{
			Name:   "or",
			Usage:  "Aggregate bitfields of the same round",
			Flags:  []cli.Flag{newBitsFlag()},
			Action: orAction,
		},
		{
			Name:   "encode",
			Usage:  "Encode a vote record for gossip",
			Flags:  newRecordFlags(),
			Action: encodeAction,
		},
	}
	return app
}
