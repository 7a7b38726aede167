package config

import (
	"log"

	"gorm.io/gorm"

	"gad-officerhub/internal/adapters/persistence/models"
	"gad-officerhub/internal/core/domain"
	"gad-officerhub/internal/pkg/password"
)

// SeedAll seeds master data and the demo accounts. Every seeder is
// idempotent: tables that already hold rows are left alone. The SPARK feed
// table is never seeded, it belongs to the external system.
func SeedAll(db *gorm.DB) error {
	log.Println("🌱 Seeding database...")

	if err := seedMasters(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func seedMasters(db *gorm.DB) error {
	if err := seedNamed(db, &models.Cadre{}, []string{"IAS", "IPS", "IFS"}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.Category{}, []string{"General", "OBC", "SC", "ST"}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.Designation{}, []string{
		"Under Secretary", "Deputy Secretary", "Director", "Joint Secretary", "Additional Secretary", "Secretary",
	}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.Ministry{}, []string{
		"Ministry of Home Affairs", "Ministry of Finance", "Ministry of External Affairs", "Ministry of Defence",
	}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.Department{}, []string{
		"Department of Revenue", "Department of Expenditure", "Department of Personnel and Training",
	}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.Organisation{}, []string{
		"Cabinet Secretariat", "NITI Aayog", "Central Vigilance Commission",
	}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.TenureType{}, []string{
		"Central Staffing Scheme", "Non Central Staffing Scheme", "Cadre Post",
	}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.DeputationType{}, []string{
		"Central Deputation", "Inter State Deputation", "Foreign Assignment",
	}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.State{}, []string{
		"Kerala", "Tamil Nadu", "Karnataka", "Maharashtra", "Delhi",
	}); err != nil {
		return err
	}
	if err := seedNamed(db, &models.Country{}, []string{
		"India", "United States", "United Kingdom", "Switzerland",
	}); err != nil {
		return err
	}

	// Districts and offices carry extra columns, seeded separately.
	if err := seedDistricts(db); err != nil {
		return err
	}
	return seedOffices(db)
}

// seedNamed inserts name-only master rows when the table is empty.
func seedNamed[T any](db *gorm.DB, model *T, names []string) error {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range names {
		row := new(T)
		if m, ok := any(row).(models.Master); ok {
			m.SetName(name)
			m.SetActive(true)
		}
		if err := db.Create(row).Error; err != nil {
			return err
		}
	}
	log.Printf("🌱 Seeded %d rows into %T", len(names), model)
	return nil
}

func seedDistricts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.District{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var kerala models.State
	if err := db.Where("name = ?", "Kerala").First(&kerala).Error; err != nil {
		return err
	}

	names := []string{"Thiruvananthapuram", "Ernakulam", "Kozhikode", "Thrissur"}
	for _, name := range names {
		district := models.District{StateID: kerala.ID}
		district.Name = name
		district.IsActive = true
		if err := db.Create(&district).Error; err != nil {
			return err
		}
	}
	log.Printf("🌱 Seeded %d districts", len(names))
	return nil
}

func seedOffices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Office{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	offices := []models.Office{
		{Address: "Government Secretariat, Thiruvananthapuram"},
		{Address: "Civil Station, Kakkanad, Ernakulam"},
	}
	offices[0].Name = "General Administration Department"
	offices[1].Name = "District Collectorate Ernakulam"
	for i := range offices {
		offices[i].IsActive = true
		if err := db.Create(&offices[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("🌱 Seeded %d offices", len(offices))
	return nil
}

// seedUsers creates the demo accounts for each role. Replace the passwords
// before any non-local deployment.
func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	create := func(username, role string, officerID uint) (*models.User, error) {
		hash, err := password.Hash(username + "@123")
		if err != nil {
			return nil, err
		}
		user := &models.User{
			Username:  username,
			Password:  hash,
			Role:      role,
			OfficerID: officerID,
			IsActive:  true,
		}
		return user, db.Create(user).Error
	}

	if _, err := create("admin", domain.RoleAdmin, 0); err != nil {
		return err
	}

	// The officer account points at its own profile, so patch OfficerID
	// once the row id is known; the clerk acts on that same profile.
	officer, err := create("officer1", domain.RoleOfficer, 0)
	if err != nil {
		return err
	}
	officer.OfficerID = officer.ID
	if err := db.Save(officer).Error; err != nil {
		return err
	}

	if _, err := create("clerk1", domain.RoleClerk, officer.ID); err != nil {
		return err
	}

	log.Println("🌱 Seeded 3 demo users")
	return nil
}
