package migration

import (
	"github.com/freeenergie/parrainage/internal/config"
	"github.com/freeenergie/parrainage/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// golang-migrate is wired for postgres; other dialects (sqlite in
		// tests, mysql) take the AutoMigrate path.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else if err := seed.AutoMigrate(conn); err != nil {
			return err
		}

		return seed.EnsureDefaults(conn)
	}),
)
