// Command jwt encodes and decodes JSON Web Tokens from the command line.
package main

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/urfave/cli"
)

var version = "dev"

func main() {
	app := cli.NewApp()
	app.Name = "jwt"
	app.Usage = "Encode and decode JWTs from the command line. Keys can be in PEM/DER/JWK."
	app.Version = version
	app.Commands = []cli.Command{
		encodeCommand(),
		decodeCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// readLine reads a single line, used when a positional argument is the
// stdin sentinel "-".
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}
