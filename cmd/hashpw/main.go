// Command hashpw prints a bcrypt hash for seeding user_account.password_hash when the
// service runs with AUTH_PASSWORD_MODE=bcrypt.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dinhviettung/citizen-registry/internal/auth"
)

const defaultCost = 12

func main() {
	_ = godotenv.Load()

	cost := defaultCost
	if raw := os.Getenv("AUTH_BCRYPT_COST"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("invalid AUTH_BCRYPT_COST: %v", err)
		}
		cost = parsed
	}
	flag.IntVar(&cost, "cost", cost, "bcrypt cost")
	flag.Parse()

	password := "admin123"
	if flag.NArg() > 0 {
		password = flag.Arg(0)
	}

	hashed, err := auth.HashPassword(password, cost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hashed)
}
