package main

import (
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli"
)

//   check - replay the IMA log and compare against a PCR10 value
//   tree - show the IMA namespaces recorded in the log
//   ns-map - map a container id to its IMA namespace id

// Version of imacheck
const Version = "0.01"

const (
	exitMismatch      = 1
	exitUnprocessable = 2
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "imacheck"
	app.Usage = "Verify PCR10 against the IMA measurement list"
	app.Version = Version
	app.Commands = []cli.Command{
		checkCmd,
		treeCmd,
		nsMapCmd,
	}
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "display additional debug information",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("%v\n", err)
	}
}
