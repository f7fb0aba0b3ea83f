package main

import (
	"fmt"
	"net/http"
	"path"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/octodash/octodash/cmd/dashboard/config"
	"github.com/octodash/octodash/pkg/dashboard/scm"
	"github.com/octodash/octodash/pkg/dashboard/server"
	"github.com/octodash/octodash/pkg/dashboard/store"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warnf("could not load .env file, relying on env vars")
	}

	config, err := config.Environ()
	if err != nil {
		log.Fatalln("main: invalid configuration")
	}

	initLogger(config)
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Traceln(config.String())
	}

	if config.Github.ClientID == "" || config.Github.ClientSecret == "" {
		panic(fmt.Errorf("please provide the GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET variables"))
	}
	if config.SessionSecret == "" {
		log.Warnf("SESSION_SECRET is not set, using an insecure default")
		config.SessionSecret = "fallback-secret-key"
	}

	sessionStore := store.New(time.Duration(config.SessionTTLHours) * time.Hour)

	gitService := scm.NewGithubClient()
	gitService.ApiURL = config.Github.ApiURL

	metricsRouter := chi.NewRouter()
	metricsRouter.Get("/metrics", promhttp.Handler().ServeHTTP)
	go http.ListenAndServe(":9001", metricsRouter)

	r := server.SetupRouter(config, sessionStore, gitService)
	log.Infof("octodash backend listening on port %d", config.Port)
	err = http.ListenAndServe(fmt.Sprintf(":%d", config.Port), r)
	log.Error(err)
}

// helper function configures the logging.
func initLogger(c *config.Config) {
	log.SetReportCaller(true)

	customFormatter := &log.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return "", fmt.Sprintf("[%s:%d]", filename, f.Line)
		},
	}
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)

	if c.Logging.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if c.Logging.Trace {
		log.SetLevel(log.TraceLevel)
	}
}
