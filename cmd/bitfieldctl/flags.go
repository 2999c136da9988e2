package main

import (
	"github.com/prysmaticlabs/shardvote/cmd/flags"
	"github.com/urfave/cli/v2"
)

const (
	logFormatFlag    = "log-format"
	logFileFlag      = "log-file"
	verbosityFlag    = "verbosity"
	bitsFlag         = "bits"
	participantsFlag = "participants"
	indexFlag        = "index"
	configFileFlag   = "config-file"
	shardFlag        = "shard"
	periodFlag       = "period"
	snappyFlag       = "snappy"
)

var logFormat string

// Slice flags keep their parsed values between runs, so every app gets its own flag set.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		flags.EnumValue{
			Name:        logFormatFlag,
			Usage:       "Specify log formatting",
			EnvVars:     []string{"BITFIELDCTL_LOG_FORMAT"},
			Destination: &logFormat,
			Enum:        []string{"text", "fluentd", "json"},
			Value:       "text",
		}.GenericFlag(),
		&cli.StringFlag{
			Name:  logFileFlag,
			Usage: "Specify log file name, relative or absolute",
		},
		&cli.StringFlag{
			Name:  verbosityFlag,
			Usage: "Logging verbosity (trace, debug, info=default, warn, error, fatal, panic)",
			Value: "info",
		},
	}
}

func newBitsFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:  bitsFlag,
		Usage: "Hex encoded attester bitfield, e.g. 0x0802",
	}
}

func newParticipantsFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:     participantsFlag,
		Usage:    "Number of attesters in the committee",
		Required: true,
	}
}

func newIndexFlag() *cli.IntSliceFlag {
	return &cli.IntSliceFlag{
		Name:     indexFlag,
		Usage:    "Committee index of an attester that voted, may be repeated",
		Required: true,
	}
}

func newConfigFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  configFileFlag,
		Usage: "YAML file overriding the default committee and quorum sizes",
	}
}

func newRecordFlags() []cli.Flag {
	return []cli.Flag{
		newBitsFlag(),
		&cli.Uint64Flag{
			Name:  shardFlag,
			Usage: "Shard of the vote record",
		},
		&cli.Uint64Flag{
			Name:  periodFlag,
			Usage: "Period of the vote record",
		},
		&cli.BoolFlag{
			Name:  snappyFlag,
			Usage: "Compress the encoded vote record with snappy",
		},
	}
}
