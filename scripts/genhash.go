// Command genhash prints bcrypt hashes for seeding users by hand.
//
//	go run ./scripts/genhash.go 'password123' 'another-password'
package main

import (
	"fmt"
	"os"

	"job-board-backend/pkg/security"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>...")
		os.Exit(2)
	}

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	for _, pass := range os.Args[1:] {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			continue
		}
		fmt.Println(hash)
	}
}
