// Command hashpass produces a bcrypt hash for the static user registry.
// The password comes from the first argument, or is prompted without echo
// when run interactively.
//
//	hashpass [password]
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/fupbi/followup-shell/users"
)

func main() {
	password, err := readPassword()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpass: %v\n", err)
		os.Exit(1)
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpass [password]")
		os.Exit(1)
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpass: failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func readPassword() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}

	fmt.Fprint(os.Stderr, "Enter password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
