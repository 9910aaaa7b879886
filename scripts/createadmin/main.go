package main

import (
	"fmt"
	"log"
	"os"

	"saathi/config"
	"saathi/database"
	"saathi/models"

	"golang.org/x/crypto/bcrypt"
)

// Creates an admin account. Usage: createadmin <username> <password>
func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: createadmin <username> <password>")
		os.Exit(1)
	}
	username := os.Args[1]
	password := os.Args[2]

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	var existing models.Admin
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		log.Fatalf("Admin %q already exists", username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.Admin{
		Username: username,
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin %q created with id %d\n", admin.Username, admin.ID)
}
