package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/frahmantamala/personal-finance/internal/category"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// systemCategories is the template set cloned into every new account.
var systemCategories = []category.Category{
	{Name: "Salary", Type: category.TypeIncome, Icon: "briefcase", IsSystem: true},
	{Name: "Business", Type: category.TypeIncome, Icon: "building", IsSystem: true},
	{Name: "Food", Type: category.TypeExpense, Icon: "utensils", IsSystem: true},
	{Name: "Shopping", Type: category.TypeExpense, Icon: "shopping-cart", IsSystem: true},
	{Name: "Rent", Type: category.TypeExpense, Icon: "home", IsSystem: true},
	{Name: "Investment", Type: category.TypeIncome, Icon: "chart-line", IsSystem: true},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the system category templates",
	Long:  `Insert the system category templates that registration clones into new accounts. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := gormDB.Where("is_system = ?", true).Delete(&category.Category{}).Error; err != nil {
				log.Fatalf("failed to clear system categories: %v", err)
			}
			fmt.Println("Cleared existing system categories")
		}

		for _, tmpl := range systemCategories {
			var existing category.Category
			err := gormDB.Where("is_system = ? AND name = ? AND type = ?", true, tmpl.Name, tmpl.Type).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("failed to check system category %s: %v", tmpl.Name, err)
			}

			c := tmpl
			c.Color = category.DefaultColor
			if err := gormDB.Create(&c).Error; err != nil {
				log.Fatalf("failed to insert system category %s: %v", tmpl.Name, err)
			}
			fmt.Printf("Seeded system category: %s (%s)\n", c.Name, c.Type)
		}

		fmt.Println("System categories seeded successfully")
	},
}
