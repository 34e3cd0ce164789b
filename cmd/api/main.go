package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/clinicdesk/scheduler-api/internal/config"
	"github.com/clinicdesk/scheduler-api/internal/handler"
	appointmentHandler "github.com/clinicdesk/scheduler-api/internal/handler/appointment"
	doctorHandler "github.com/clinicdesk/scheduler-api/internal/handler/doctor"
	patientHandler "github.com/clinicdesk/scheduler-api/internal/handler/patient"
	"github.com/clinicdesk/scheduler-api/internal/middleware"
	"github.com/clinicdesk/scheduler-api/internal/repository/jsonstore"
	"github.com/clinicdesk/scheduler-api/internal/router"
	"github.com/clinicdesk/scheduler-api/internal/service/scheduler"
	"github.com/clinicdesk/scheduler-api/internal/worker"
	"github.com/clinicdesk/scheduler-api/pkg/logger"
	"github.com/clinicdesk/scheduler-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	m := metrics.New(cfg.Metrics.Namespace)

	store, err := jsonstore.New(cfg.Data.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the snapshot taken at the previous shutdown. Appointments
	// load last so dangling references can be dropped.
	patients, err := store.LoadPatients(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load patients")
	}
	doctors, err := store.LoadDoctors(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load doctors")
	}
	appointments, err := store.LoadAppointments(ctx, patients, doctors)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load appointments")
	}

	schedulerSvc := scheduler.NewService(m)
	schedulerSvc.Restore(patients, doctors, appointments)
	log.Info().
		Int("patients", len(patients)).
		Int("doctors", len(doctors)).
		Int("appointments", len(appointments)).
		Msg("directory restored from snapshot")

	h := handler.NewHandler()
	patientH := patientHandler.NewHandler(schedulerSvc)
	doctorH := doctorHandler.NewHandler(schedulerSvc)
	appointmentH := appointmentHandler.NewHandler(schedulerSvc)

	routerCfg := router.Config{
		CORSConfig:    middleware.DefaultCORSConfig(),
		CacheConfig:   middleware.DefaultCacheConfig(),
		MetricsPrefix: cfg.Metrics.Namespace,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst: cfg.RateLimit.Burst,
		}
	}

	r := router.NewRouter(patientH, doctorH, appointmentH, h, routerCfg)
	r.Setup()

	snapshotWorker := worker.NewSnapshotWorker(schedulerSvc, store, cfg.Snapshot.Interval, m)
	go snapshotWorker.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Final snapshot so the next start sees current state.
	if err := snapshotWorker.Snapshot(context.Background()); err != nil {
		log.Error().Err(err).Msg("final snapshot failed")
	} else {
		log.Info().Msg("final snapshot written")
	}
}
