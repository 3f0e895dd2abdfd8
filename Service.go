// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fedora-infra/bodhi-service/client"
	"github.com/fedora-infra/bodhi-service/controller"
	"github.com/fedora-infra/bodhi-service/db"
	"github.com/fedora-infra/bodhi-service/metrics"
	midldleware "github.com/fedora-infra/bodhi-service/middleware"
	"github.com/fedora-infra/bodhi-service/migration"
	"github.com/fedora-infra/bodhi-service/repository"
	"github.com/fedora-infra/bodhi-service/security"
	"github.com/fedora-infra/bodhi-service/service"
	"github.com/fedora-infra/bodhi-service/service/validation"
	"github.com/fedora-infra/bodhi-service/utils"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	basePath := os.Getenv("BASE_PATH")
	if basePath == "" {
		basePath = "."
	}
	if err := godotenv.Load(filepath.Join(basePath, ".env")); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to load .env file: %v\n", err)
	}

	mw := io.Writer(os.Stderr)
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		mw = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		})
	}
	log.SetFormatter(&prefixed.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		ForceFormatting: true,
	})
	log.SetOutput(mw)
	logLevel, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)
}

func main() {
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		panic(err)
	}
	basePath := systemInfoService.GetBasePath()

	readyChan := make(chan bool)
	r := mux.NewRouter().StrictSlash(true).UseEncodedPath()
	r.Use(midldleware.PrometheusMiddleware)

	cp := db.NewConnectionProvider(systemInfoService.GetCredsFromEnv())

	migrationService, err := migration.NewDBMigrationService(cp, filepath.Join(basePath, "resources", "migrations"))
	if err != nil {
		log.Fatalf("Failed to create migration service: %v", err)
	}
	currentVersion, newVersion, err := migrationService.Migrate()
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Infof("Database schema version %d, migrated from %d", newVersion, currentVersion)

	metrics.RegisterAllPrometheusApplicationMetrics()

	if err = security.SetupGoGuardian(systemInfoService.GetJwtSecret()); err != nil {
		log.Fatalf("Can't setup go_guardian. Error - %s", err.Error())
	}

	updateRepo, err := repository.NewUpdateRepositoryPG(cp)
	if err != nil {
		log.Fatalf("Failed to create update repository: %v", err)
	}
	releaseRepo, err := repository.NewReleaseRepositoryPG(cp)
	if err != nil {
		log.Fatalf("Failed to create release repository: %v", err)
	}
	userRepo, err := repository.NewUserRepositoryPG(cp)
	if err != nil {
		log.Fatalf("Failed to create user repository: %v", err)
	}
	packageRepo, err := repository.NewPackageRepositoryPG(cp)
	if err != nil {
		log.Fatalf("Failed to create package repository: %v", err)
	}

	buildSystemClient := client.NewBuildSystemClient(
		systemInfoService.GetBuildSystemUrl(),
		systemInfoService.GetBuildSystemTimeout(),
		systemInfoService.GetBuildSystemRateLimit(),
		systemInfoService.GetUpstreamMaxRetries())
	ownershipClient := client.NewPackageOwnershipClient(
		systemInfoService.GetPkgdbUrl(),
		systemInfoService.GetBuildSystemTimeout(),
		systemInfoService.GetUpstreamMaxRetries())
	var notificationSink client.NotificationSink
	if brokers := systemInfoService.GetKafkaBrokers(); len(brokers) > 0 {
		notificationSink = client.NewKafkaNotificationSink(brokers, systemInfoService.GetKafkaTopic())
	} else {
		notificationSink = client.NewLogNotificationSink()
	}
	defer notificationSink.Close()

	updateValidator := validation.NewUpdateValidator(buildSystemClient, ownershipClient, updateRepo, releaseRepo, systemInfoService.GetAclOverrideGroups())
	updateService := service.NewUpdateService(updateValidator, updateRepo, releaseRepo, userRepo, notificationSink)
	userService := service.NewUserService(userRepo, updateRepo, packageRepo, systemInfoService.GetAdminGroups(), systemInfoService.IsLibravatarEnabled())
	releaseService := service.NewReleaseService(releaseRepo, buildSystemClient)
	updateMetricsService := service.NewUpdateMetricsService(updateRepo, releaseRepo)
	excelService := service.NewExcelService()

	updateController := controller.NewUpdateController(updateService)
	userController := controller.NewUserController(userService)
	releaseController := controller.NewReleaseController(releaseService)
	updateMetricsController := controller.NewUpdateMetricsController(updateMetricsService, excelService)
	adminController := controller.NewAdminController(userService)
	healthController := controller.NewHealthController(readyChan, func(ctx context.Context) error {
		return cp.GetConnection().Ping(ctx)
	})

	r.HandleFunc("/updates/", security.NoSecure(updateController.GetUpdates)).Methods(http.MethodGet)
	r.HandleFunc("/updates/", security.Secure(updateController.SaveUpdate)).Methods(http.MethodPost)

	r.HandleFunc("/users/", security.NoSecure(userController.GetUsers)).Methods(http.MethodGet)
	r.HandleFunc("/users/{name}", security.NoSecure(userController.GetUserByName)).Methods(http.MethodGet)

	r.HandleFunc("/releases/", security.NoSecure(releaseController.GetReleases)).Methods(http.MethodGet)
	r.HandleFunc("/latest_candidates", security.NoSecure(releaseController.GetLatestCandidates)).Methods(http.MethodGet)
	r.HandleFunc("/search/packages", security.NoSecure(releaseController.SearchPackages)).Methods(http.MethodGet)

	r.HandleFunc("/metrics/updates", security.NoSecure(updateMetricsController.GetUpdateTypeMetrics)).Methods(http.MethodGet)
	r.HandleFunc("/admin/", security.Secure(adminController.GetAdminInfo)).Methods(http.MethodGet)

	r.HandleFunc("/live", healthController.HandleLiveRequest).Methods(http.MethodGet)
	r.HandleFunc("/ready", healthController.HandleReadyRequest).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if err = updateMetricsService.RefreshUpdateCounts(); err != nil {
		log.Warnf("Failed to calculate initial update counts: %v", err)
	}
	if err = updateMetricsService.CreateJob(systemInfoService.GetMetricsGetterSchedule()); err != nil {
		log.Errorf("Failed to start update metrics job: %v", err)
	}

	var corsOptions []handlers.CORSOption
	if originAllowed := systemInfoService.GetOriginAllowed(); originAllowed != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins(strings.Split(originAllowed, ",")))
	}
	corsOptions = append(corsOptions,
		handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}))

	srv := &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         systemInfoService.GetListenAddress(),
		WriteTimeout: 300 * time.Second,
		ReadTimeout:  30 * time.Second,
	}

	utils.SafeAsync(func() {
		readyChan <- true
		close(readyChan)
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	utils.SafeAsync(func() {
		<-stop
		log.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Failed to shutdown server gracefully: %v", err)
		}
	})

	log.Infof("Listening on %s", srv.Addr)
	if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Http server returned error: %v", err)
	}
}
