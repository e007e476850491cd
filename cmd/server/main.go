package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	accountspersistence "github.com/floodops/pafs/modules/accounts/infrastructure/persistence"
	areaspersistence "github.com/floodops/pafs/modules/areas/infrastructure/persistence"
	areascontrollers "github.com/floodops/pafs/modules/areas/presentation/controllers"
	areaservices "github.com/floodops/pafs/modules/areas/services"
	projectspersistence "github.com/floodops/pafs/modules/projects/infrastructure/persistence"
	projectscontrollers "github.com/floodops/pafs/modules/projects/presentation/controllers"
	projectservices "github.com/floodops/pafs/modules/projects/services"

	"github.com/floodops/pafs/internal/server"
	"github.com/floodops/pafs/pkg/configuration"
	"github.com/floodops/pafs/pkg/eventbus"
)

func main() {
	conf := configuration.Use()
	log := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	publisher := eventbus.NewEventPublisher(log)
	mapper := projectspersistence.NewFieldMapper()

	areaService := areaservices.NewAreaHierarchyService(areaspersistence.NewAreaRepository())
	projectRepo := projectspersistence.NewProjectRepository()
	pipeline := projectservices.NewValidationPipeline(areaService, projectRepo)
	projectService := projectservices.NewProjectService(pipeline, projectRepo, mapper, publisher)

	srv := server.New(
		server.Options{
			Logger:   log,
			Pool:     pool,
			Accounts: accountspersistence.NewAccountRepository(),
			Address:  conf.Address,
		},
		projectscontrollers.NewProjectAPIController(projectService, mapper),
		areascontrollers.NewAreaAPIController(areaService),
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}
