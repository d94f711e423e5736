// Utility for resetting a user password by hand:
//
//	go run scripts/generate_password.go <password>
//
// Paste the printed hash into users.password with an UPDATE statement.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 12)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(os.Args[1])); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Printf("Hash: %s\n", string(hash))
	fmt.Printf("SQL:  UPDATE users SET password = '%s' WHERE email = '<email>';\n", string(hash))
}
