package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedClients() []models.ClientRow {
	return []models.ClientRow{
		{
			FirstName: "Sarah", LastName: "Martin", Company: "Wedding Corp",
			Email: "sarah.martin@example.com", Phone: "0601020304", Address: "12 rue des Fleurs, Paris",
			Status: string(models.ClientStatusClient), Tags: datatypes.JSONSlice[string]{"mariage", "client-fidele"},
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			FirstName: "Marc", LastName: "Dubois", Company: "StartupX",
			Email: "marc.dubois@example.com", Phone: "0605060708", Address: "5 avenue Victor Hugo, Lyon",
			Status: string(models.ClientStatusProspect), Tags: datatypes.JSONSlice[string]{"startup", "corporate"},
			CreatedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			FirstName: "Julie", LastName: "Rousseau", Company: "E-Shop",
			Email: "julie.rousseau@example.com", Phone: "0611223344", Address: "20 boulevard Alsace, Marseille",
			Status: string(models.ClientStatusClient), Tags: datatypes.JSONSlice[string]{"e-commerce"},
			CreatedAt: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

func seedWebsites() []models.WebsiteRow {
	return []models.WebsiteRow{
		{Name: "Shadcn UI", URL: "https://ui.shadcn.com", Description: "Bibliothèque de composants React", Tag: "Outils"},
	}
}

// Seed inserts the sample clients and websites that are not present yet.
// Clients are matched on email, websites on URL.
func Seed(conn *gorm.DB) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		added := 0
		for _, c := range seedClients() {
			ok, err := missing(tx, &models.ClientRow{}, "email = ?", c.Email)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			c.ID = uuid.NewString()
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed client %s: %w", c.Email, err)
			}
			added++
		}
		for _, w := range seedWebsites() {
			ok, err := missing(tx, &models.WebsiteRow{}, "url = ?", w.URL)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			w.ID = uuid.NewString()
			if err := tx.Create(&w).Error; err != nil {
				return fmt.Errorf("seed website %s: %w", w.URL, err)
			}
			added++
		}
		logger.Info("seed complete", "added", added)
		return nil
	})
}

func missing(tx *gorm.DB, model any, where string, arg any) (bool, error) {
	err := tx.Model(model).Where(where, arg).Take(model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, err
}
