package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/msvens/sgallery/internal/archive"
	"github.com/msvens/sgallery/internal/config"
	"github.com/msvens/sgallery/internal/dao"
	"github.com/msvens/sgallery/internal/service"
	"go.uber.org/zap"
)

type gserver struct {
	store      *dao.Store
	sgdb       *dao.SGDB
	gallery    *service.Gallery
	transfer   *archive.Transfer
	r          *mux.Router
	l          *zap.SugaredLogger
	prefixPath string
	exportDir  string
}

func NewServer(prefixPath string) *gserver {
	s := gserver{}
	s.prefixPath = prefixPath

	//setup logging
	l, _ := zap.NewDevelopment()
	s.l = l.Sugar()

	s.r = mux.NewRouter()

	s.store = dao.NewStore(config.DbPath())
	var err error
	if s.sgdb, err = s.store.Open(); err != nil {
		s.l.Panicw("could not open store", "error", err)
	}
	s.gallery = service.NewGallery(s.sgdb)
	s.transfer = archive.NewTransfer(s.sgdb)

	s.exportDir = config.ExportDir()
	if err = os.MkdirAll(s.exportDir, 0744); err != nil {
		s.l.Panicw("could not create export dir", zap.Error(err))
	}

	//start async job channel:
	wg.Add(1)
	go worker(jobChan)

	return &s
}

func StartGServer() {
	if err := config.InitConfig(); err != nil {
		panic(err)
	}

	s := NewServer(config.ServerPrefix())
	s.routes()
	defer s.l.Sync()

	srv := &http.Server{
		Addr:    config.ServerAddr(),
		Handler: s.r,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.l.Fatalw("listen", zap.Error(err))
		}
	}()

	s.l.Info("server started")

	<-done //wait for shutdown interrupt, e.g ctrl-c

	s.l.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.l.Fatalw("server shutdown failed", zap.Error(err))
	}

	//no request can schedule a job once the listener is down, drain
	//the ones already queued
	close(jobChan)
	wg.Wait()

	if err := s.store.Close(); err != nil {
		s.l.Fatalw("store close failed", zap.Error(err))
	}

	s.l.Info("server exited properly")
}
