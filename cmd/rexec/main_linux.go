// Command rexec runs the cloned-binary guard and then executes its
// arguments from the sealed in-memory copy of this binary's image.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/criyle/go-rexec/rexec"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sys/unix"
)

const usage = "ensure the running binary is a sealed in-memory clone of itself, then exec the given program"

func main() {
	app := cli.NewApp()
	app.Name = "rexec"
	app.Usage = usage
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "state",
			Usage: "print the clone state of the running image and exit",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Bool("state") {
		state, err := rexec.Detect()
		if err != nil {
			return err
		}
		fmt.Println(state)
		return nil
	}

	// hard precondition: nothing below this line runs from the host
	// on-disk binary
	if err := rexec.Ensure(); err != nil {
		logrus.Fatalf("clone guard: %v", err)
	}

	args := ctx.Args()
	if len(args) == 0 {
		state, err := rexec.Detect()
		if err != nil {
			return err
		}
		fmt.Println(state)
		return nil
	}
	path, err := exec.LookPath(args[0])
	if err != nil {
		return err
	}
	return unix.Exec(path, args, os.Environ())
}
