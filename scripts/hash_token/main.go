// Command hash_token produces a bcrypt hash of an admin token for use
// as ADMIN_TOKEN_HASH, so deployments never carry the plaintext value.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	token := flag.Arg(0)
	if token == "" {
		token = os.Getenv("ADMIN_TOKEN")
	}
	if token == "" {
		log.Fatal("usage: hash_token [-cost N] <token> (or set ADMIN_TOKEN)")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), *cost)
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}
	fmt.Println(string(hash))
}
