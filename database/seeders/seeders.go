package seeders

import (
	"log"

	"campushub_go/database"
	"campushub_go/models"
	"campushub_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedAdminUser()
	SeedTimeSlots()

	log.Println("Database seeding completed successfully!")
}

// SeedAdminUser creates the initial administrator account
func SeedAdminUser() {
	var count int64
	database.DB.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		log.Println("Admin user already seeded, skipping...")
		return
	}

	hashed, err := utils.HashPassword("admin1234")
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := models.User{
		Email:    "admin@campushub.local",
		Password: hashed,
		Name:     "Administrator",
		Role:     "ADMIN",
		Active:   true,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin user: %v", err)
		return
	}

	log.Println("Admin user seeded successfully")
}

// SeedTimeSlots seeds the default named slot table
func SeedTimeSlots() {
	var count int64
	database.DB.Model(&models.TimeSlotConfig{}).Count(&count)
	if count > 0 {
		log.Println("Time slots already seeded, skipping...")
		return
	}

	slots := []models.TimeSlotConfig{
		{SlotID: "slot-1", StartTime: "09:00", EndTime: "10:00", Label: "Period 1", Order: 1, IsActive: true},
		{SlotID: "slot-2", StartTime: "10:00", EndTime: "11:00", Label: "Period 2", Order: 2, IsActive: true},
		{SlotID: "slot-3", StartTime: "11:00", EndTime: "12:00", Label: "Period 3", Order: 3, IsActive: true},
		{SlotID: "lunch", StartTime: "12:00", EndTime: "12:30", Label: "Lunch Break", IsBreak: true, Order: 4, IsActive: true},
		{SlotID: "slot-4", StartTime: "12:30", EndTime: "13:30", Label: "Period 4", Order: 5, IsActive: true},
		{SlotID: "slot-5", StartTime: "13:30", EndTime: "14:30", Label: "Period 5", Order: 6, IsActive: true},
		{SlotID: "slot-6", StartTime: "14:30", EndTime: "15:30", Label: "Period 6", Order: 7, IsActive: true},
	}

	for _, slot := range slots {
		if err := database.DB.Create(&slot).Error; err != nil {
			log.Printf("Error seeding time slot %s: %v", slot.SlotID, err)
		}
	}

	log.Println("Time slots seeded successfully")
}
