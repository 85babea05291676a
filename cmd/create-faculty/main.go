package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/database"
	"github.com/eduport/eduport-backend/internal/logger"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
)

// create-faculty inserts a faculty account directly, bypassing the OTP
// verification flow. Useful for bootstrapping a fresh deployment where no
// faculty exists yet to receive mail.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	db, closeMongo, err := database.NewMongoDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() { _ = closeMongo(context.Background()) }()

	facultyRepo := repository.NewFacultyRepository(db)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Faculty Account ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Faculty ID
	fmt.Print("Enter Faculty ID: ")
	facultyID, _ := reader.ReadString('\n')
	facultyID = strings.TrimSpace(facultyID)
	if facultyID == "" {
		fmt.Println("Error: Faculty ID is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	faculty := &model.Faculty{
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		FacultyID: facultyID,
	}
	faculty.SeedDefaults(time.Now().UTC())

	id, err := facultyRepo.Insert(ctx, faculty)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create faculty")
	}

	fmt.Printf("\nSuccess! Faculty '%s' (%s) created with ID: %s\n", faculty.Name, faculty.Email, id.Hex())
}
