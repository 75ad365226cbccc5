package main

import (
	"fmt"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var nsMapCmd = cli.Command{
	Name:      "ns-map",
	Usage:     "Map a container id to the IMA namespace id it runs in",
	ArgsUsage: "<container-id>",
	Action:    doNsMap,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "s,script",
			Usage: "Helper script resolving container ids to ima_ns ids",
			Value: "./ima_ns_id_mapping.sh",
		},
		cli.BoolTFlag{
			Name:  "sudo",
			Usage: "run the helper through sudo (it reads /proc of other users)",
		},
	},
}

func doNsMap(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("Required argument: container id")
	}

	script := ctx.String("script")
	if !PathExists(script) {
		return fmt.Errorf("No such helper script: %s", script)
	}

	cmd := []string{"bash", script, ctx.Args().First()}
	if ctx.BoolT("sudo") {
		cmd = append([]string{"sudo"}, cmd...)
	}
	log.Debugf("running %v", cmd)

	out, err := runCommand(cmd...)
	if err != nil {
		return errors.Wrapf(err, "Failed mapping container %s", ctx.Args().First())
	}
	fmt.Fprintln(ctx.App.Writer, out)
	return nil
}
