// Command create-admin provisions an admin account and prints its
// credentials. Without flags a random email and password are generated.
package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/Monesha-B/nexus-job-platform/internal/config"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueEmail tries until an unused admin email is found
func generateUniqueEmail(db *gorm.DB) string {
	for {
		email := fmt.Sprintf("admin_%s@nexus.local", generateRandomString(4))
		var count int64
		db.Model(&model.User{}).Where("email = ?", email).Count(&count)
		if count == 0 {
			return email
		}
	}
}

// prompt asks for email and password on stdin.
func prompt() (string, string) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Enter password: ")
	password1, _ := reader.ReadString('\n')
	fmt.Print("Confirm password: ")
	password2, _ := reader.ReadString('\n')

	password1 = strings.TrimSpace(password1)
	if password1 != strings.TrimSpace(password2) {
		log.Fatal("Passwords do not match.")
	}
	if len(password1) < 6 {
		log.Fatal("Password must be at least 6 characters.")
	}
	return strings.TrimSpace(email), password1
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	interactive := flag.Bool("i", false, "prompt for email and password")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewDBInstance(database.ConfigFrom(cfg))
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	var email, password string
	if *interactive {
		email, password = prompt()
		var count int64
		db.Model(&model.User{}).Where("email = ?", strings.ToLower(email)).Count(&count)
		if count > 0 {
			log.Fatal("Email already taken")
		}
	} else {
		email = generateUniqueEmail(db.DB)
		password = generateRandomString(8)
	}

	if err := utilities.CreateAdmin(email, password, db.DB); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email: %s\n", strings.ToLower(email))
	if !*interactive {
		fmt.Printf("Password: %s\n", password)
	}
	fmt.Println("======================================")
}
