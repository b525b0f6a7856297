package main

import (
	"flag"
	"log"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "email of the pending user to approve")
	roleCode := flag.String("role", model.RoleStaff, "role code to assign (MASTER_ADMIN, ADMIN, STAFF)")
	flag.Parse()

	if *email == "" {
		log.Fatal("❌ -email is required")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the pending user
	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *email, err)
	}
	if user.Status != model.UserPending {
		log.Fatalf("❌ User %s is %s, only PENDING users can be approved", *email, user.Status)
	}

	// 4. Find the role
	var role model.Role
	if err := db.Preload("Privileges").Where("code = ?", *roleCode).First(&role).Error; err != nil {
		log.Fatalf("❌ Role %s not found in database: %v", *roleCode, err)
	}

	// 5. Activate and assign role + privileges
	user.Status = model.UserActive
	user.RoleID = &role.ID
	user.UpdatedBy = "approve-user-cli"
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("❌ Failed to update user in DB: %v", err)
	}
	if err := db.Model(&user).Association("Privileges").Replace(role.Privileges); err != nil {
		log.Fatalf("❌ Failed to assign privileges: %v", err)
	}

	log.Printf("✅ Success! User %s approved with role %s (%d privileges)", *email, role.Code, len(role.Privileges))
}
