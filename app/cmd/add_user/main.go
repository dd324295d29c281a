package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/joho/godotenv"
)

func main() {
	name := flag.String("name", "", "Representative name")
	email := flag.String("email", "", "Representative email")
	password := flag.String("password", "", "Representative password")
	scope := flag.String("scope", "", "Class scope (defaults to DEFAULT_SCOPE)")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("Usage: add_user -name <name> -email <email> -password <password> [-scope <class>]")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if *scope == "" {
		*scope = config.AppConfig.DefaultScope
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		Scope:    *scope,
		Name:     *name,
		Email:    *email,
		Password: hashed,
	}

	if err := database.CreateUser(db, user); err != nil {
		log.Fatal("Error creating user:", err)
	}

	fmt.Printf("User created successfully: %s (%s), scope %s\n", user.Name, user.Email, user.Scope)
}
