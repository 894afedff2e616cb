package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli"

	"github.com/encodedmedia/jwt-cli/claims"
	"github.com/encodedmedia/jwt-cli/sig"
	"github.com/encodedmedia/jwt-cli/token"
)

func encodeCommand() cli.Command {
	return cli.Command{
		Name:      "encode",
		Usage:     "Encode new JWTs",
		ArgsUsage: "[json]",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "alg, A",
				Usage: "the algorithm to use for signing the JWT: " + strings.Join(sig.Names(), "|"),
				Value: "HS256",
			},
			cli.StringFlag{
				Name:  "kid, k",
				Usage: "the kid to place in the header",
			},
			cli.StringFlag{
				Name:  "typ, t",
				Usage: "the type of token being encoded",
			},
			cli.StringSliceFlag{
				Name:  "payload, P",
				Usage: "a key=value pair to add to the payload",
			},
			cli.StringFlag{
				Name:  "exp, e",
				Usage: "the time the token should expire, as a UNIX timestamp or a duration string",
				Value: "+30 min",
			},
			cli.StringFlag{
				Name:  "iss, i",
				Usage: "the issuer of the token",
			},
			cli.StringFlag{
				Name:  "sub, s",
				Usage: "the subject of the token",
			},
			cli.StringFlag{
				Name:  "aud, a",
				Usage: "the audience of the token",
			},
			cli.StringFlag{
				Name:  "jti",
				Usage: "the jwt id of the token",
			},
			cli.StringFlag{
				Name:  "nbf, n",
				Usage: "the time the JWT should become valid, as a UNIX timestamp or a duration string",
			},
			cli.BoolFlag{
				Name:  "no-iat",
				Usage: "prevent an iat claim from being automatically added",
			},
			cli.StringFlag{
				Name:     "secret, S",
				Usage:    "the secret to sign the JWT with, prefixed with @ to read from a file",
				Required: true,
			},
			cli.StringFlag{
				Name:  "keyformat, f",
				Usage: "the format of the secret param or file: pem|der|jwk",
			},
		},
		Action: encodeAction,
	}
}

func encodeAction(c *cli.Context) error {
	if err := validateTokenType(c.String("typ")); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if c.String("typ") != "" {
		fmt.Println("Sorry, `typ` isn't supported quite yet!")
	}

	alg, err := sig.FromString(c.String("alg"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := validatePayloadItems(c.StringSlice("payload")); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	rawJSON := c.Args().First()
	if rawJSON == "-" {
		line, err := readLine(os.Stdin)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("unable to read the payload from stdin: %v", err), 1)
		}
		rawJSON = line
	}

	set, err := claims.BuildParams{
		Now:        time.Now(),
		NoIssuedAt: c.Bool("no-iat"),
		Expiry:     c.String("exp"),
		NotBefore:  c.String("nbf"),
		Issuer:     c.String("iss"),
		Subject:    c.String("sub"),
		Audience:   c.String("aud"),
		ID:         c.String("jti"),
		Pairs:      c.StringSlice("payload"),
		JSON:       strings.TrimSpace(rawJSON),
	}.Build()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	signed, err := token.Encode(token.EncodeParams{
		Alg:    alg,
		Kid:    c.String("kid"),
		Claims: set,
		Secret: c.String("secret"),
		Format: c.String("keyformat"),
	})
	if err != nil {
		printError("Something went awry creating the jwt")
		fmt.Fprintln(os.Stderr, err)
		return cli.NewExitError("", 1)
	}

	// a newline only when a human is watching, so piped output stays clean
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(signed)
	} else {
		fmt.Print(signed)
	}
	return nil
}

// validateTokenType restricts the typ header to the only value the
// encoder knows how to emit.
func validateTokenType(typ string) error {
	if typ != "" && typ != "JWT" {
		return fmt.Errorf("unsupported token type %q: only JWT is accepted", typ)
	}
	return nil
}

// validatePayloadItems enforces the key=value shape before any claim
// parsing runs: exactly one '=' per item.
func validatePayloadItems(items []string) error {
	for _, item := range items {
		if strings.Count(item, "=") != 1 {
			return fmt.Errorf("payloads must have a key and value in the form key=value: %q", item)
		}
	}
	return nil
}
