package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/project-machine/imacheck/pkg/ima"
	"github.com/urfave/cli"
)

var checkCmd = cli.Command{
	Name:      "check",
	Usage:     "Replay the measurement list and compare with a PCR10 value",
	ArgsUsage: "<pcr10-value> [ima-ns-id]",
	Action:    doCheck,
	Flags: append([]cli.Flag{
		cli.BoolFlag{
			Name:  "json",
			Usage: "print the result as json",
		},
	}, logFlags...),
}

func doCheck(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 1 && len(args) != 2 {
		return cli.NewExitError("Required PCR10 value as parameter, optionally followed by the id of an ima_ns to report", exitUnprocessable)
	}

	cfg := ima.Config{
		Algorithm:      ctx.String("algorithm"),
		Target:         args.Get(0),
		Markers:        markersFromContext(ctx),
		WatchNamespace: args.Get(1),
	}

	f, err := ima.OpenLog(appFs, ctx.String("log"))
	if err != nil {
		return cli.NewExitError(err, exitUnprocessable)
	}
	defer f.Close()

	res, err := ima.Verify(context.Background(), f, cfg)
	if err != nil {
		return cli.NewExitError(err, exitUnprocessable)
	}

	if ctx.Bool("json") {
		err = printJSON(ctx.App.Writer, res)
	} else {
		printResult(ctx.App.Writer, res)
	}
	if err != nil {
		return err
	}

	if !res.Matched {
		return cli.NewExitError("", exitMismatch)
	}
	return nil
}

func printJSON(w io.Writer, res *ima.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printResult(w io.Writer, res *ima.Result) {
	if res.Matched {
		color.New(color.FgGreen).Fprintln(w, "PCR 10 validated correctly!")
	} else {
		color.New(color.FgRed).Fprintln(w, "PCR 10 does NOT match!")
		fmt.Fprintln(w, res.Computed)
	}
	if ns := res.Namespace; ns != nil {
		fmt.Fprintf(w, "ima_ns %s: %d measurements, virtual PCR %s\n", ns.ID, ns.Measurements, ns.Value)
	}
}
