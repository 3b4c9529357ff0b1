package main

import (
	"context"
	"time"

	"apartment_rent/go_gin_pages"
	"apartment_rent/internal/config"
	"apartment_rent/internal/logger"
	"apartment_rent/repository"
	"apartment_rent/service"
	"apartment_rent/sql_conn"
	"apartment_rent/types"
	"apartment_rent/utils/jwt"
	"apartment_rent/utils/querybuilder"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.GetConfig(config.Path())
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	log := logger.New(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := repository.NewMetrics(reg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := &repository.Database{}
	if src, err := sql_conn.Open(ctx, cfg.Database); err != nil {
		log.WithError(err).Warn("running without a database")
		db.Dialect, _ = querybuilder.DialectFor(cfg.Database.Driver)
	} else {
		defer src.Close()
		db = repository.NewDatabase(src.DB, src.Dialect)
		reg.MustRegister(collectors.NewDBStatsCollector(src.DB, src.Dialect.Name))
	}

	repo := repository.NewRepo(db, log, metrics)
	if db.IsEnabled() {
		if err := repo.PrepareSchema(ctx); err != nil {
			log.WithError(err).Fatal("could not prepare schema")
		}
	}

	deps := go_gin_pages.Dependencies{
		Origin:         cfg.BaseURL,
		Log:            log,
		DB:             db,
		Gatherer:       reg,
		RecordsPerPage: cfg.Pagination.RecordsPerPage,
		Accounts:       &service.AccountService{Repo: repo},
		Apartments:     &service.ApartmentService{Repo: repo},
		Bookings:       &service.BookingService{Repo: repo},
		Orders:         &service.OrderService{Repo: repo},
	}
	if signer := newSigner(cfg.Auth, log); signer != nil {
		deps.Tokens = signer
	}

	ginServer := gin.Default()
	ginServer.UseRawPath = true
	go_gin_pages.Prepare(ginServer, deps)
	log.WithField("address", cfg.Address()).Info("listening")
	if err := ginServer.Run(cfg.Address()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func newSigner(auth config.Auth, log logrus.FieldLogger) *jwt.Signer {
	if auth.Secret == "" {
		log.Warn("no token secret configured, logins answer without a token")
		return nil
	}
	lifetime, err := types.ParseISO8601Duration(auth.TokenLifetime, time.Minute)
	if err != nil {
		log.WithError(err).Fatal("invalid token lifetime")
	}
	signer, err := jwt.NewSigner([]byte(auth.Secret), lifetime)
	if err != nil {
		log.WithError(err).Fatal("could not create token signer")
	}
	return signer
}
