package db

import (
	"os"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.LogError(err, "Warning: impossible to load the .env file")
		utils.LogInfo("The environment variable DB_URL must be defined in the system environment")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		utils.LogError(nil, "Variable DB_URL not set")
		panic("Database URL not configured")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		utils.LogError(err, "Error connecting to the database")
		panic("Could not connect to the database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Video{},
		&models.Audio{},
		&models.ContentComment{},
		&models.ContentLike{},
		&models.ContentView{},
		&models.Subscription{},
		&models.SubscriptionPayment{},
		&models.Notification{},
	)
	if err != nil {
		utils.LogError(err, "Error migrating database")
		panic("Could not migrate database")
	}

	// At most one paid ACTIVE subscription per (creator, subscriber) pair.
	// Zero-amount rows are free follows and stay outside the constraint.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_active_pair
		ON subscriptions (content_creator_id, subscriber_id)
		WHERE status = 'ACTIVE' AND amount > 0`).Error
	if err != nil {
		utils.LogError(err, "Error creating the active subscription unique index")
		panic("Could not create the active subscription unique index")
	}

	utils.LogSuccess("Database connection successful")
}
