package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/starford/harmoni/internal/auth"
)

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Print the argon2id hash of a password for auth.password_hash",
		ArgsUsage: " ",
		Action:    hashPassword,
	}
}

// readPassword prompts on a terminal without echo. Piped input is read one
// line at a time.
func readPassword(prompt string, in *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func hashPassword(_ context.Context, cmd *cli.Command) error {
	in := bufio.NewReader(os.Stdin)
	password, err := readPassword("Enter password:   ", in)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	confirm, err := readPassword("Confirm password: ", in)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, hash)
	return nil
}
