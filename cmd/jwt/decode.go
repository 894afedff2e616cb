package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/encodedmedia/jwt-cli/keys"
	"github.com/encodedmedia/jwt-cli/sig"
	"github.com/encodedmedia/jwt-cli/token"
)

func decodeCommand() cli.Command {
	return cli.Command{
		Name:      "decode",
		Usage:     "Decode a JWT",
		ArgsUsage: "<jwt>",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "alg, A",
				Usage: "the algorithm used to sign the JWT: " + strings.Join(sig.Names(), "|"),
				Value: "HS256",
			},
			cli.BoolFlag{
				Name:  "iso8601",
				Usage: "display unix timestamps as ISO 8601 dates",
			},
			cli.StringFlag{
				Name:  "secret, S",
				Usage: "the secret to validate the JWT with, prefixed with @ to read from a file; empty skips validation",
			},
			cli.BoolFlag{
				Name:  "json, j",
				Usage: "render the decoded JWT as JSON",
			},
			cli.BoolFlag{
				Name:  "ignore-exp",
				Usage: "ignore the token expiration date (`exp` claim) during validation",
			},
			cli.StringFlag{
				Name:  "keyformat, f",
				Usage: "the format of the secret param or file: pem|der|jwk",
			},
		},
		Action: decodeAction,
	}
}

func decodeAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("a JWT to decode is required", 1)
	}

	alg, err := sig.FromString(c.String("alg"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	raw := c.Args().First()
	if raw == "-" {
		line, err := readLine(os.Stdin)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("unable to read the token from stdin: %v", err), 1)
		}
		raw = line
	}

	res := token.Decode(token.DecodeParams{
		Token:        strings.TrimSpace(raw),
		Alg:          alg,
		Secret:       c.String("secret"),
		Format:       c.String("keyformat"),
		IgnoreExpiry: c.Bool("ignore-exp"),
		ISODates:     c.Bool("iso8601"),
	})

	// an unreadable secret file aborts before any display; other
	// verification failures still show the unverified extraction so the
	// token stays inspectable
	if abortsBeforeDisplay(res.VerifyErr) {
		printError(res.VerifyErr.Error())
		return cli.NewExitError("", 1)
	}
	// the verification outcome drives the exit status
	if res.VerifyErr != nil {
		printError(token.Describe(res.VerifyErr))
	}
	if res.Data == nil {
		return cli.NewExitError("", 1)
	}

	if c.Bool("json") {
		if err := printJSON(res.Data); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	} else {
		printSection("Token header", res.Data.Header)
		printSection("Token claims", res.Data.Claims)
	}

	if res.VerifyErr != nil {
		return cli.NewExitError("", 1)
	}
	return nil
}

// abortsBeforeDisplay reports whether a verification error must terminate
// the command before the decoded token is shown.
func abortsBeforeDisplay(err error) bool {
	return err != nil && errors.Is(err, keys.ErrUnreadableKeyFile)
}
