package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/floodops/pafs/modules/accounts/domain/account"
	"github.com/floodops/pafs/pkg/middleware"
)

// Controller is one mountable API surface.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type Options struct {
	Logger   *logrus.Logger
	Pool     *pgxpool.Pool
	Accounts account.Repository
	Address  string
}

type Server struct {
	http *http.Server
	log  *logrus.Logger
}

func New(opts Options, controllers ...Controller) *Server {
	r := mux.NewRouter()
	r.Use(
		middleware.WithLogger(opts.Logger),
		middleware.WithPool(opts.Pool),
		middleware.Authorize(opts.Accounts),
	)

	for _, c := range controllers {
		c.Register(r)
		opts.Logger.WithField("controller", c.Key()).Debug("registered controller")
	}

	return &Server{
		http: &http.Server{
			Addr:              opts.Address,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: opts.Logger,
	}
}

func (s *Server) ListenAndServe() error {
	s.log.WithField("address", s.http.Addr).Info("server listening")
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
