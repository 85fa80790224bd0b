package database

import (
	"log"

	"tcu-system/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Seed creates the catalog rows and accounts the system cannot run without:
// the three roles, the three statuses and the default admin. With demo set it
// also creates a sample professor, student and project. Safe to run on every
// start, existing rows are left alone.
func Seed(adminEmail, adminPassword string, demo bool) {
	for _, name := range []string{"Estudiante", "Profesor", "Admin"} {
		seedRole(name)
	}
	for _, name := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		seedStatus(name)
	}

	seedUser(adminEmail, adminPassword, "Admin", "System", "Admin", nil)

	if demo {
		seedDemoData()
	}
}

func seedRole(name string) {
	var count int64
	if err := DB.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		log.Printf("failed to check role %s: %v", name, err)
		return
	}
	if count > 0 {
		return
	}
	if err := DB.Create(&models.Role{Name: name}).Error; err != nil {
		log.Printf("failed to create role %s: %v", name, err)
		return
	}
	log.Printf("created role: %s", name)
}

func seedStatus(name string) {
	var count int64
	if err := DB.Model(&models.Status{}).Where("name = ?", name).Count(&count).Error; err != nil {
		log.Printf("failed to check status %s: %v", name, err)
		return
	}
	if count > 0 {
		return
	}
	if err := DB.Create(&models.Status{Name: name}).Error; err != nil {
		log.Printf("failed to create status %s: %v", name, err)
		return
	}
	log.Printf("created status: %s", name)
}

func seedUser(email, password, roleName, firstName, lastName string, projectID *uint) {
	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("failed to check user %s: %v", email, err)
		return
	}
	if count > 0 {
		return
	}

	var role models.Role
	if err := DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		log.Printf("failed to look up role %s: %v", roleName, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash password for %s: %v", email, err)
		return
	}

	user := models.User{
		RoleID:       role.ID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		ProjectID:    projectID,
	}
	if err := DB.Create(&user).Error; err != nil {
		log.Printf("failed to create user %s: %v", email, err)
		return
	}
	log.Printf("created user: %s (role=%s, password=%s)", email, roleName, password)
}

// sample professor + student + project so a fresh install is clickable
func seedDemoData() {
	const (
		profEmail    = "profesor@example.com"
		studentEmail = "estudiante@example.com"
		projectCode  = "TCU001"
	)

	seedUser(profEmail, "prof123", "Profesor", "Carlos", "Rodríguez", nil)
	seedUser(studentEmail, "estu123", "Estudiante", "Ana", "Martínez", nil)

	var count int64
	if err := DB.Model(&models.Project{}).Where("code = ?", projectCode).Count(&count).Error; err != nil {
		log.Printf("failed to check project %s: %v", projectCode, err)
		return
	}
	if count > 0 {
		return
	}

	var professor models.User
	if err := DB.Where("email = ?", profEmail).First(&professor).Error; err != nil {
		log.Printf("failed to look up professor: %v", err)
		return
	}

	project := models.Project{
		Code:        projectCode,
		Name:        "Proyecto de Reforestación",
		ProfessorID: &professor.ID,
	}
	if err := DB.Create(&project).Error; err != nil {
		log.Printf("failed to create project %s: %v", projectCode, err)
		return
	}
	log.Printf("created project: %s", project.Name)

	if err := DB.Model(&models.User{}).Where("email = ?", studentEmail).
		Update("project_id", project.ID).Error; err != nil {
		log.Printf("failed to assign project to student: %v", err)
		return
	}
	log.Printf("assigned project %s to %s", projectCode, studentEmail)
}
