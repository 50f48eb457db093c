package main

import (
	"log"
	"os"
	"time"

	"eventbook/internal/database"
	"eventbook/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "eventbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Host{},
		&domain.Event{},
		&domain.Booking{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM hosts")
	db.Exec("DELETE FROM users")

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		return string(h)
	}

	adminUser := domain.User{Email: "admin@eventbook.local", PasswordHash: hash("admin123"), Name: "Admin", Role: domain.RoleAdmin}
	hostUser := domain.User{Email: "host@eventbook.local", PasswordHash: hash("host123"), Name: "Priya Sharma", Role: domain.RoleHost}
	regularUser := domain.User{Email: "user@eventbook.local", PasswordHash: hash("user123"), Name: "Arjun Mehta", Role: domain.RoleUser}

	for _, u := range []*domain.User{&adminUser, &hostUser, &regularUser} {
		if err := db.Create(u).Error; err != nil {
			log.Fatal("seed user failed:", err)
		}
	}

	hostProfile := domain.Host{
		UserID:             hostUser.ID,
		BusinessName:       "Starlight Events",
		BusinessType:       "concerts",
		City:               "Bengaluru",
		VerificationStatus: domain.HostApproved,
	}
	if err := db.Create(&hostProfile).Error; err != nil {
		log.Fatal("seed host failed:", err)
	}

	now := time.Now()
	events := []domain.Event{
		{
			HostID:           hostProfile.ID,
			Name:             "Indie Night Live",
			Description:      "An evening of independent music.",
			EventType:        "concert",
			Venue:            "Palace Grounds",
			City:             "Bengaluru",
			Date:             now.AddDate(0, 1, 0),
			Price:            50000, // 500.00 in minor units
			Capacity:         200,
			AvailableTickets: 200,
			Status:           domain.EventApproved,
		},
		{
			HostID:           hostProfile.ID,
			Name:             "Startup Pitch Summit",
			Description:      "Founders pitch to investors.",
			EventType:        "conference",
			Venue:            "Convention Centre",
			City:             "Mumbai",
			Date:             now.AddDate(0, 2, 0),
			Price:            150000,
			Capacity:         500,
			AvailableTickets: 500,
			Status:           domain.EventApproved,
		},
		{
			HostID:           hostProfile.ID,
			Name:             "Midnight Comedy Hour",
			EventType:        "comedy",
			Venue:            "Laugh Factory",
			City:             "Bengaluru",
			Date:             now.AddDate(0, 0, 14),
			Price:            30000,
			Capacity:         80,
			AvailableTickets: 80,
			Status:           domain.EventPending,
		},
	}
	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			log.Fatal("seed event failed:", err)
		}
	}

	log.Printf("Seed complete: %d users, 1 host, %d events", 3, len(events))
}
