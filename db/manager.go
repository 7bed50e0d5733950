package db

import (
	"context"
	"fmt"
	"log"
	"pairdiary/config"
	"pairdiary/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var ORM *gorm.DB

func dsnFromConfig(dbConf config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConf.Host, dbConf.Port, dbConf.User, dbConf.Password, dbConf.Name,
	)
}

func ConnectDB() (err error) {
	if ORM != nil {
		log.Println("ORM is already initialized")
		return nil
	}

	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}
	conf := config.AppConfig

	var dialector gorm.Dialector
	switch conf.Database.Driver {
	case "sqlite":
		path := conf.Database.Path
		if path == "" {
			path = "diary.db"
		}
		dialector = sqlite.Open(path)
	case "postgres":
		if conf.Database.Master.Host == "" {
			return fmt.Errorf("master database configuration is missing")
		}
		dialector = postgres.Open(dsnFromConfig(conf.Database.Master))
	default:
		return fmt.Errorf("unsupported database driver %q", conf.Database.Driver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	// Read replicas only make sense for the postgres deployment.
	if conf.Database.Driver == "postgres" && len(conf.Database.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(conf.Database.Replicas))
		for _, r := range conf.Database.Replicas {
			replicas = append(replicas, postgres.Open(dsnFromConfig(r)))
		}
		err = database.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return err
		}
	}

	if err = Migrate(database); err != nil {
		return err
	}

	ORM = database
	return nil
}

// Migrate creates or updates all tables. The unique indexes on username,
// account_id, invite_code and session token back the uniqueness invariants.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Pair{},
		&models.Friendship{},
		&models.Diary{},
		&models.PublicDiary{},
	)
}

// GetReadOnlyDB returns a handle routed to a replica when one is configured.
func GetReadOnlyDB(ctx context.Context) *gorm.DB {
	return ORM.WithContext(ctx).Clauses(dbresolver.Read)
}

// GetWriteDB returns a handle routed to the master.
func GetWriteDB(ctx context.Context) *gorm.DB {
	return ORM.WithContext(ctx).Clauses(dbresolver.Write)
}
