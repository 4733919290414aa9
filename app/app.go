// Package app provides the main application context for shipper, wiring the
// database and services.
package app

import (
	"log/slog"
	"os"

	"gorm.io/gorm"

	"github.com/scrappystats/shipper/builder"
	"github.com/scrappystats/shipper/config"
	"github.com/scrappystats/shipper/db"
	"github.com/scrappystats/shipper/deployer"
	"github.com/scrappystats/shipper/dockerutil"
	"github.com/scrappystats/shipper/gitutil"
	"github.com/scrappystats/shipper/repository"
	"github.com/scrappystats/shipper/transfer"
)

var (
	database      *gorm.DB
	appConfig     *config.Config
	gitService    *gitutil.GitService
	buildService  builder.Service
	deployService deployer.Service
	historyRepo   repository.DeploymentRepository
)

// InitializeWithConfig initializes the app with a pre-configured Config
func InitializeWithConfig(cfg *config.Config) error {
	var err error

	appConfig = cfg

	// Ensure the deploy host layout exists
	if err := os.MkdirAll(appConfig.BaseDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(appConfig.ReleasesDir, 0o755); err != nil {
		return err
	}

	database, err = db.InitDB(appConfig.DatabasePath)
	if err != nil {
		return err
	}

	if err := db.AutoMigrateAll(database); err != nil {
		return err
	}

	gitService = gitutil.NewGitService()
	historyRepo = repository.NewDeploymentRepository(database)

	buildService = builder.NewBuilder(appConfig, gitService, transfer.NewSSHUploader(appConfig))

	// The health probe needs a Docker daemon; on a build-only machine its
	// absence downgrades the probe rather than blocking the CLI
	var health deployer.HealthChecker
	if dockerClient, err := dockerutil.NewDockerClient(); err != nil {
		slog.Warn("Docker client unavailable, health probe disabled", "error", err)
	} else {
		health = dockerClient
	}

	deployService = deployer.NewDeployer(appConfig, historyRepo, health, nil)
	return nil
}

func GetConfig() *config.Config {
	return appConfig
}

func GetBuildService() builder.Service {
	return buildService
}

func GetDeployService() deployer.Service {
	return deployService
}

func GetHistoryRepository() repository.DeploymentRepository {
	return historyRepo
}

// SetBuildServiceForTesting allows overriding the build service for testing purposes
func SetBuildServiceForTesting(service builder.Service) {
	buildService = service
}

// SetDeployServiceForTesting allows overriding the deploy service for testing purposes
func SetDeployServiceForTesting(service deployer.Service) {
	deployService = service
}

// SetConfigForTesting allows overriding the config for testing purposes
func SetConfigForTesting(cfg *config.Config) {
	appConfig = cfg
}
