package main

import (
	"github.com/project-machine/imacheck/pkg/ima"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

// appFs is where measurement lists are read from.
var appFs = afero.NewOsFs()

var logFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "l,log",
		Usage: "IMA ascii measurement list to replay",
		Value: ima.DefaultLogPath,
	},
	cli.StringFlag{
		Name:  "a,algorithm",
		Usage: "PCR bank digest algorithm (sha1, sha256, sha384, sha512)",
		Value: ima.DefaultAlgorithm,
	},
	cli.StringFlag{
		Name:  "ns-event-marker",
		Usage: "Template name of namespace create/close entries",
		Value: ima.DefaultNamespaceEventMarker,
	},
	cli.StringFlag{
		Name:  "ns-measurement-marker",
		Usage: "Template name of namespaced measurement entries",
		Value: ima.DefaultNamespaceMeasurementMarker,
	},
}

func markersFromContext(ctx *cli.Context) ima.Markers {
	return ima.Markers{
		NamespaceEvent:       ctx.String("ns-event-marker"),
		NamespaceMeasurement: ctx.String("ns-measurement-marker"),
	}
}
