package main

import (
	"context"
	"log"
	"unitrade_backend/config"
	"unitrade_backend/internal/imagestore"
	"unitrade_backend/routes"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if cfg.DBReset {
		err = config.ResetAndMigrate(db)
	} else {
		err = config.Migrate(db)
	}
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	var images imagestore.Store = imagestore.NewDisk(cfg.UploadDir)
	if cfg.S3Bucket != "" {
		s3Store, err := imagestore.NewS3(context.Background(), cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Fatal("Failed to initialize S3:", err)
		}
		images = s3Store
	}

	app := routes.NewApp(cfg, db, images)

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
