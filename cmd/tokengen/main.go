// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command tokengen issues and inspects session tokens for local development.
//
// It signs with the same SESSION_SECRET, TOKEN_ISSUER and SESSION_TTL the
// API server reads, so a printed token is accepted by a server started from
// the same environment.
//
//	tokengen --subject alice [--ttl 1h]
//	tokengen --verify <token>
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/taibuivan/petstore/internal/platform/config"
	"github.com/taibuivan/petstore/internal/platform/sec"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var subject, verify string
	var ttl time.Duration

	flagSet := pflag.NewFlagSet("tokengen", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&subject, "subject", "s", "", "username the token is issued for")
	flagSet.DurationVar(&ttl, "ttl", 0, "token lifetime (default: SESSION_TTL)")
	flagSet.StringVar(&verify, "verify", "", "verify a token and print its subject")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if (subject == "") == (verify == "") {
		return errors.New("exactly one of --subject or --verify is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = cfg.SessionTTL
	}

	tokens, err := sec.NewTokenService(cfg.SessionSecret, cfg.TokenIssuer, ttl)
	if err != nil {
		return err
	}

	if verify != "" {
		verified, err := tokens.Verify(verify)
		if err != nil {
			return fmt.Errorf("token rejected: %w", err)
		}
		fmt.Fprintln(stdout, verified)
		return nil
	}

	token, err := tokens.Issue(subject)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, token.Serialized)
	fmt.Fprintf(stderr, "expires at %s\n", token.ExpiresAt.UTC().Format(time.RFC3339))
	return nil
}
