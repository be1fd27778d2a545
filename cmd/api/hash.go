package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/chama/internal/auth"
)

var errEmptySecret = errors.New("empty secret")

// writeSecretHash reads a role secret from the first line of r and writes the
// bcrypt hash to set as AUTH_<ROLE>_SECRET_HASH.
func writeSecretHash(w io.Writer, r io.Reader) error {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading secret: %w", err)
	}

	secret := strings.TrimSpace(line)
	if secret == "" {
		return errEmptySecret
	}

	hash, err := auth.HashSecret(secret)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, hash); err != nil {
		return fmt.Errorf("writing hash: %w", err)
	}

	return nil
}
