package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"leadcapture/internal/database"
	"leadcapture/internal/domain/access"
	"leadcapture/internal/domain/auth"
	"leadcapture/internal/domain/landing"
	"leadcapture/internal/domain/lead"
)

// Seeds an idempotent super admin plus a demo landing page so a fresh
// checkout can be exercised immediately.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "leadcapture.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&auth.User{},
		&landing.LandingPage{},
		&access.AdminAccess{},
		&access.AccessRequest{},
		&lead.Lead{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// ================== SUPER ADMIN ==================
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@leadcapture.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	db.Model(&auth.User{}).Where("email = ?", email).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		admin := auth.User{
			Name:         "Super Admin",
			Email:        email,
			PasswordHash: string(hash),
			Role:         auth.RoleSuperAdmin,
			Status:       auth.StatusApproved,
			CompanyName:  "Lead Capture",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatal("Super admin creation failed:", err)
		}
		log.Printf("Super admin created: %s / %s", email, password)
	} else {
		log.Printf("Super admin already exists: %s", email)
	}

	// ================== DEMO LANDING PAGE ==================
	db.Model(&landing.LandingPage{}).Where("name = ?", "Demo Landing").Count(&count)
	if count > 0 {
		log.Println("Demo landing page already exists")
		return
	}

	page := landing.LandingPage{
		Name:        "Demo Landing",
		URL:         "https://example.com/demo",
		Description: "Seeded page for local development",
		Status:      landing.StatusActive,
		IncludeDefaultFields: landing.DefaultFieldSet{
			"firstName": true,
			"lastName":  true,
			"email":     true,
			"phone":     true,
			"company":   false,
			"message":   true,
		},
		FormFields: landing.FormFields{
			{
				Name:     "budget",
				Label:    "Budget",
				Type:     landing.FieldSelect,
				Required: true,
				Options: []landing.FieldOption{
					{Value: "small", Label: "Under $1k"},
					{Value: "medium", Label: "$1k to $10k"},
					{Value: "large", Label: "Over $10k"},
				},
				Order: 1,
			},
			{
				Name:  "newsletter",
				Label: "Subscribe to newsletter",
				Type:  landing.FieldCheckbox,
				Order: 2,
			},
		},
	}
	if err := db.Create(&page).Error; err != nil {
		log.Fatal("Demo landing page creation failed:", err)
	}
	log.Printf("Demo landing page created: id=%d", page.ID)
}
