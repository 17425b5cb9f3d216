package config

import (
	"fmt"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultLoanTypes = []models.LoanType{
	{Name: "Daily Collection", Description: "Short term loan collected every day"},
	{Name: "Weekly Collection", Description: "Loan collected once a week"},
	{Name: "Monthly EMI", Description: "Monthly reducing-balance EMI loan"},
}

// Seed inserts the default loan types and, when a password is configured,
// the master admin account. It is safe to run on every start.
func Seed(db *gorm.DB, cfg *Config, lg *logrus.Logger) error {
	for _, lt := range defaultLoanTypes {
		var cnt int64
		if err := db.Model(&models.LoanType{}).Where("name = ?", lt.Name).Count(&cnt).Error; err != nil {
			return fmt.Errorf("count loan type %q: %w", lt.Name, err)
		}
		if cnt == 0 {
			if err := db.Create(&lt).Error; err != nil {
				return err
			}
		}
	}

	if cfg.SeedAdminPassword == "" {
		return nil
	}
	var cnt int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.SeedAdminEmail).Count(&cnt).Error; err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if cnt > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:        cfg.SeedAdminEmail,
		Username:     "admin",
		FullName:     "Master Admin",
		Role:         models.RoleMasterAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	lg.WithField("email", admin.Email).Info("seeded master admin")
	return nil
}
