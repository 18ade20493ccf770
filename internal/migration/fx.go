package migration

import (
	"github.com/kelasi/kelasi/internal/config"
	"github.com/kelasi/kelasi/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Embedded SQL targets postgres. Other dialects (sqlite in dev,
		// mysql deployments) derive the schema from the models instead.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := seed.AutoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoSchool(conn)
		}
		return nil
	}),
)
