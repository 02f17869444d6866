package database

import (
	"context"
	"log"

	"staffdir-backend/shared/clients"
	"staffdir-backend/shared/database/models"

	"gorm.io/gorm"
)

// SeedDatabase seeds the database with sample companies and users.
// Seeding is idempotent: existing records are left untouched.
func SeedDatabase(geocoder clients.Geocoder) error {
	log.Println("🌱 Checking database seed data...")

	companiesCreated, companyIDs, err := seedCompanies(geocoder)
	if err != nil {
		return err
	}

	usersCreated, err := seedUsers(companyIDs)
	if err != nil {
		return err
	}

	if companiesCreated > 0 || usersCreated > 0 {
		log.Printf("✅ Database seeding completed (%d companies, %d users created)", companiesCreated, usersCreated)
	} else {
		log.Println("✅ Database seed data is up to date")
	}

	return nil
}

// seedCompanies creates the sample companies and returns their IDs by name
func seedCompanies(geocoder clients.Geocoder) (int, map[string]uint, error) {
	companies := []models.Company{
		{Name: "Acme Corporation", Address: "1 Main St, Springfield"},
		{Name: "Globex", Address: "10 Downing Street, London"},
		{Name: "Initech", Address: "Alexanderplatz 1, Berlin"},
	}

	created := 0
	ids := map[string]uint{}
	for _, company := range companies {
		var existing models.Company
		err := DB.Where("name = ?", company.Name).First(&existing).Error
		if err == nil {
			ids[existing.Name] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, ids, err
		}

		coords := geocoder.Resolve(context.Background(), company.Address)
		company.Latitude = &coords.Latitude
		company.Longitude = &coords.Longitude

		if err := DB.Create(&company).Error; err != nil {
			return created, ids, err
		}
		ids[company.Name] = company.ID
		created++
	}

	return created, ids, nil
}

// seedUsers creates the sample users
func seedUsers(companyIDs map[string]uint) (int, error) {
	acmeID := companyIDs["Acme Corporation"]
	globexID := companyIDs["Globex"]

	users := []models.User{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@acme.example", Designation: "Engineer", DOB: "1990-12-10", CompanyID: &acmeID, IsActive: true},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@globex.example", Designation: "Architect", DOB: "1986-12-09", CompanyID: &globexID, IsActive: true},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Designation: "Analyst", DOB: "1992-06-23", CompanyID: nil, IsActive: true},
	}

	created := 0
	for _, user := range users {
		var existing models.User
		err := DB.Where("email = ?", user.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, err
		}

		if err := DB.Create(&user).Error; err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
