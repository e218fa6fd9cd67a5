// Package daemon is the long-running process behind the tray and the CLI.
// It polls the battery, keeps the current icon composited, gates
// notifications and serves everything over a unix-socket HTTP API.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/events"
	"github.com/battray/battray/pkg/icon"
	"github.com/battray/battray/pkg/notify"
	"github.com/battray/battray/pkg/powersource"
)

var (
	conf   config.Config
	loop   *poller
	sseHub = events.NewHub()
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/state", getState)
	router.GET("/telemetry", getTelemetry)
	router.GET("/icon", getIcon)
	router.GET("/preferences", getPreferences)
	router.PUT("/thresholds", setThresholds)
	router.PUT("/poll-interval", setPollInterval)
	router.PUT("/last-notified", setLastNotified)
	router.GET("/version", getVersion)
	router.GET("/events", streamEvents)

	return router
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool, svc powersource.Service) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: router,
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// The poller opens the reader itself and retries on failure, so a
	// missing battery service degrades to the diagnostic icon instead of
	// killing the daemon.
	reader := powersource.NewReader(svc)

	loop = newPoller(
		reader,
		icon.NewCompositor(icon.DefaultLoader()),
		notify.NewGate(conf, notify.NewDefaultPoster()),
		sseHub,
		conf,
	)

	stop := make(chan struct{})
	go func() {
		logrus.Debugln("poll loop starts")

		loop.run(stop)

		logrus.Debugln("poll loop stopped")
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("stopping poll loop")
	close(stop)

	logrus.Info("closing power source")
	err = reader.Close()
	if err != nil {
		logrus.Errorf("failed to close power source: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
