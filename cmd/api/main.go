package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gmpsaude/clinic-scheduler/internal/config"
	dbpkg "github.com/gmpsaude/clinic-scheduler/internal/db"
	"github.com/gmpsaude/clinic-scheduler/internal/routes"
)

// Intervalo da varredura automática de no-show.
const expireSweepInterval = 10 * time.Minute

func main() {

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	deps := routes.RegisterRoutes(r, db, cfg)

	go func() {
		ticker := time.NewTicker(expireSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			updated, err := deps.Expire.Execute(ctx)
			cancel()

			if err != nil {
				logrus.WithError(err).Warn("no-show sweep failed")
				continue
			}
			if updated > 0 {
				logrus.WithField("expired", updated).Info("no-show sweep")
			}
		}
	}()

	logrus.Infof("server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
