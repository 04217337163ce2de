package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/database"
	"github.com/hospitalvoice/booking-agent/pkg/config"
	pkgjwt "github.com/hospitalvoice/booking-agent/pkg/jwt"
)

func main() {
	log.Println("🚀 Starting test hospitals creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize JWT manager
	jwtManager := pkgjwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Define test hospitals
	testHospitals := []struct {
		Name        string
		Email       string
		City        string
		State       string
		Longitude   float64
		Latitude    float64
		Specialties []string
	}{
		{Name: "City General Hospital", Email: "citygeneral@test.local", City: "Springfield", State: "IL", Longitude: -89.65, Latitude: 39.78, Specialties: []string{"cardiology", "general"}},
		{Name: "Riverside Medical Center", Email: "riverside@test.local", City: "Springfield", State: "IL", Longitude: -89.60, Latitude: 39.82, Specialties: []string{"pediatrics", "orthopedics"}},
		{Name: "St. Mary Clinic", Email: "stmary@test.local", City: "Chatham", State: "IL", Longitude: -89.70, Latitude: 39.67, Specialties: []string{"dermatology"}},
	}

	log.Println("🗑️  Cleaning up existing test hospitals...")
	db.Where("email LIKE ?", "%@test.local").Delete(&entities.Hospital{})

	log.Println("🔑 Creating test hospitals and tokens...")

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	for i, th := range testHospitals {
		specialties, err := json.Marshal(th.Specialties)
		if err != nil {
			log.Printf("❌ Failed to encode specialties for %s: %v", th.Name, err)
			continue
		}

		hospital := &entities.Hospital{
			ID:           uuid.New(),
			Name:         th.Name,
			Email:        entities.NormalizeEmail(th.Email),
			PasswordHash: string(passwordHash),
			Phone:        fmt.Sprintf("+1555010%04d", i),
			Longitude:    th.Longitude,
			Latitude:     th.Latitude,
			City:         th.City,
			State:        th.State,
			Specialties:  specialties,
			Availability: entities.HospitalAvailabilityBusiness,
			IsActive:     true,
		}

		if err := db.Create(hospital).Error; err != nil {
			log.Printf("❌ Failed to create hospital %s: %v", th.Email, err)
			continue
		}

		accessToken, err := jwtManager.GenerateAccessToken(hospital.ID, hospital.Email)
		if err != nil {
			log.Printf("❌ Failed to generate access token for %s: %v", th.Email, err)
			continue
		}

		refreshToken, err := jwtManager.GenerateRefreshToken(hospital.ID)
		if err != nil {
			log.Printf("❌ Failed to generate refresh token for %s: %v", th.Email, err)
			continue
		}

		fmt.Printf("═══════════════════════════════════════════════════════\n")
		fmt.Printf("🟢 Hospital %d: %s\n", i+1, th.Name)
		fmt.Printf("═══════════════════════════════════════════════════════\n")
		fmt.Printf("Email:        %s\n", hospital.Email)
		fmt.Printf("Password:     test-password\n")
		fmt.Printf("Hospital ID:  %s\n", hospital.ID)
		fmt.Printf("\n📋 Access Token (Copy to Postman):\n")
		fmt.Printf("%s\n", accessToken)
		fmt.Printf("\n🔄 Refresh Token:\n")
		fmt.Printf("%s\n", refreshToken)
		fmt.Printf("───────────────────────────────────────────────────────\n\n")
	}

	log.Println("✅ All test hospitals created successfully!")
	log.Println("💡 Usage:")
	log.Println("   1. Copy the Access Token above")
	log.Println("   2. In Postman, set header: Authorization: Bearer <access_token>")
	log.Println("   3. Token expiry:", cfg.JWT.AccessExpiry)
	log.Println("🧹 To clean up test hospitals, run: DELETE FROM hospitals WHERE email LIKE '%@test.local'")
}
