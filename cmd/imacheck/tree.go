package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/project-machine/imacheck/pkg/ima"
	"github.com/urfave/cli"
)

var treeCmd = cli.Command{
	Name:   "tree",
	Usage:  "Show the IMA namespaces recorded in the measurement list",
	Action: doTree,
	Flags:  logFlags,
}

func doTree(ctx *cli.Context) error {
	h, err := ima.NewHashEngine(ctx.String("algorithm"))
	if err != nil {
		return cli.NewExitError(err, exitUnprocessable)
	}

	f, err := ima.OpenLog(appFs, ctx.String("log"))
	if err != nil {
		return cli.NewExitError(err, exitUnprocessable)
	}
	defer f.Close()

	e := ima.NewEngine(h, markersFromContext(ctx), nil)
	if err := e.Run(context.Background(), f); err != nil {
		return cli.NewExitError(err, exitUnprocessable)
	}

	w := ctx.App.Writer
	if e.Tree().Root() == nil {
		fmt.Fprintln(w, "no IMA namespaces in measurement list")
	}
	e.Tree().Walk(func(n *ima.NamespaceNode, depth int) {
		fmt.Fprintf(w, "%s%s (depth %d, %s)\n", strings.Repeat("  ", depth-1), n.ID, depth, n.Status)
	})
	fmt.Fprintf(w, "%d entries, PCR %d %s\n", e.Lines(), ima.PCRIndex, hex.EncodeToString(e.Value()))
	return nil
}
