package bootstrap

import (
	"github.com/jonesrussell/gosocial/internal/agent"
	"github.com/jonesrussell/gosocial/internal/analysis"
	"github.com/jonesrussell/gosocial/internal/config"
	"github.com/jonesrussell/gosocial/internal/database"
	"github.com/jonesrussell/gosocial/internal/events"
	"github.com/jonesrussell/gosocial/internal/httpclient"
	"github.com/jonesrussell/gosocial/internal/logger"
	"github.com/jonesrussell/gosocial/internal/platform"
	"github.com/jonesrussell/gosocial/internal/repository"
)

// SetupAgentService wires the adapters, analyzer, and store into the
// orchestrator.
func SetupAgentService(
	cfg *config.Config,
	db *database.DB,
	publisher *events.Publisher,
	log logger.Logger,
) *agent.Service {
	fetchClient := httpclient.New(&httpclient.Config{
		Timeout: cfg.Agent.FetchTimeout,
	})

	registry := platform.NewRegistry(
		platform.NewBilibili(cfg.Platforms.Bilibili, fetchClient, log),
		platform.NewDouyin(cfg.Platforms.Douyin, fetchClient, log),
		platform.NewWeibo(cfg.Platforms.Weibo, fetchClient, log),
	)

	analyzer := analysis.NewClaudeAnalyzer(cfg.Analysis, cfg.Agent.MaxContentLength, log)
	contentRepo := repository.NewContentRepository(db.DB(), log)

	return agent.NewService(registry, analyzer, contentRepo, publisher, cfg.Agent.AnalysisWorkers, log)
}
