//go:build e2e

// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"procurement-workers/internal/catalog"
	"procurement-workers/internal/common/camunda"
	"procurement-workers/internal/common/config"
	"procurement-workers/internal/common/database"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/decision/similarity"
	"procurement-workers/internal/models"
	"procurement-workers/internal/procurement"
	"procurement-workers/internal/signals/news"

	analyzeproduct "procurement-workers/internal/workers/procurement/analyze-product"
	findsubstitutes "procurement-workers/internal/workers/procurement/find-substitutes"
	recommendprocurement "procurement-workers/internal/workers/procurement/recommend-procurement"
	sendprocurementalert "procurement-workers/internal/workers/procurement/send-procurement-alert"
	fetchdemandsignal "procurement-workers/internal/workers/signals/fetch-demand-signal"
	fetchweatherfactor "procurement-workers/internal/workers/signals/fetch-weather-factor"
	lookuptariff "procurement-workers/internal/workers/signals/lookup-tariff"
)

const processID = "procurement-analysis"

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	var err error

	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         envOr("ZEEBE_ADDRESS", "localhost:26500"),
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect to Zeebe: %v", err))
	}

	zapLog, _ = zap.NewProduction()

	code := m.Run()

	zeebeClient.Close()
	os.Exit(code)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// e2eEnv holds the live clients shared by the subtests.
type e2eEnv struct {
	cfg   *config.Config
	pg    *database.PostgresClient
	redis *database.RedisClient
	src   catalog.Source
	svc   *procurement.Service
	log   logger.Logger
}

func TestFullE2E(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	cfg.Database.Postgres.Host = envOr("DB_HOST", "localhost")
	cfg.Database.Redis.Address = envOr("REDIS_ADDRESS", "localhost:6379")

	env := connect(t, cfg)
	defer env.pg.Close()
	defer env.redis.Close()

	seedCatalog(t, env.pg)
	deployBPMN(t)

	t.Run("workers", func(t *testing.T) { testWorkers(t, env) })
	t.Run("process", func(t *testing.T) { testProcessInstance(t, env) })
}

func connect(t *testing.T, cfg *config.Config) *e2eEnv {
	t.Log("Checking service connectivity...")
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL client creation failed")
	require.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "Redis client creation failed")
	require.NoError(t, rdb.Ping(ctx), "Redis ping failed")

	_, err = zeebeClient.NewTopologyCommand().Send(ctx)
	require.NoError(t, err, "Zeebe topology request failed")

	log := logger.NewZapAdapter(zapLog)
	src := catalog.NewPostgresStore(pg.DB, log)

	// No news API key in CI: the live fetcher fails and the demand signal
	// degrades to neutral.
	demand := news.NewService(news.NewClient(news.ClientConfig{}, nil), log,
		news.WithCache(rdb, time.Minute))

	svc := procurement.NewService(src, similarity.DefaultConfig(), log,
		procurement.WithDemandSource(demand))

	return &e2eEnv{cfg: cfg, pg: pg, redis: rdb, src: src, svc: svc, log: log}
}

func seedCatalog(t *testing.T, pg *database.PostgresClient) {
	t.Log("Creating catalog tables and inserting test data...")
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(64) PRIMARY KEY,
			position INTEGER NOT NULL DEFAULT 0,
			name VARCHAR(255) NOT NULL,
			sku VARCHAR(64) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			base_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
			origin_country VARCHAR(100) NOT NULL DEFAULT '',
			features TEXT[] NOT NULL DEFAULT '{}',
			stock INTEGER,
			sales_velocity DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS tariffs (
			country VARCHAR(100) NOT NULL,
			category VARCHAR(100) NOT NULL,
			rate DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (country, category)
		)`,
		`DELETE FROM products WHERE id LIKE 'E2E-%'`,
		`DELETE FROM tariffs WHERE country = 'E2Eland'`,
	}
	for _, stmt := range stmts {
		_, err := pg.DB.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	products := []struct {
		id, name, category string
		price, cost        float64
		features           []string
		stock              int
		velocity           float64
	}{
		{"E2E-1", "Cordless Drill", "Tools", 100, 80, []string{"cordless", "drill", "battery"}, 5, 2},
		{"E2E-2", "Corded Drill", "Tools", 90, 40, []string{"corded", "drill"}, 200, 2},
		{"E2E-3", "Electric Kettle", "Kitchen", 30, 10, []string{"electric", "kettle"}, 50, 1},
	}
	for i, p := range products {
		_, err := pg.DB.ExecContext(ctx,
			`INSERT INTO products (id, position, name, sku, category, price, base_cost, origin_country, features, stock, sales_velocity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, 'E2Eland', $8, $9, $10)`,
			p.id, 1000+i, p.name, "SKU-"+p.id, p.category, p.price, p.cost, pq.Array(p.features), p.stock, p.velocity)
		require.NoError(t, err)
	}
	_, err := pg.DB.ExecContext(ctx, `INSERT INTO tariffs (country, category, rate) VALUES ('E2Eland', 'Tools', 0.25)`)
	require.NoError(t, err)

	t.Log("Catalog seeded")
}

func deployBPMN(t *testing.T) {
	possiblePaths := []string{"bpmn", "../bpmn", "../../bpmn"}

	var bpmnDir string
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			bpmnDir = path
			break
		}
	}
	require.NotEmpty(t, bpmnDir, "BPMN directory not found")

	files, err := os.ReadDir(bpmnDir)
	require.NoError(t, err)

	deployed := 0
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), ".bpmn") {
			continue
		}
		path := fmt.Sprintf("%s/%s", bpmnDir, f.Name())
		_, err := zeebeClient.NewDeployResourceCommand().AddResourceFile(path).Send(context.Background())
		require.NoError(t, err, "failed to deploy %s", path)
		t.Logf("Deployed: %s", f.Name())
		deployed++
	}
	require.Positive(t, deployed)
}

func testWorkers(t *testing.T, env *e2eEnv) {
	ctx := context.Background()

	t.Run(lookuptariff.TaskType, func(t *testing.T) {
		h := lookuptariff.NewHandler(lookuptariff.LoadConfig(), env.src, env.log)
		out, err := h.Execute(ctx, &lookuptariff.Input{ProductID: "E2E-1"})
		require.NoError(t, err)
		assert.True(t, out.Found)
		assert.Equal(t, 0.25, out.TariffRate)
	})

	t.Run(recommendprocurement.TaskType, func(t *testing.T) {
		p, err := env.src.Product(ctx, "E2E-1")
		require.NoError(t, err)

		h := recommendprocurement.NewHandler(recommendprocurement.LoadConfig(), env.log)
		out, err := h.Execute(ctx, &recommendprocurement.Input{Product: p, TariffRate: 0.25})
		require.NoError(t, err)
		assert.Equal(t, models.RecommendationUseSubstitute, out.Recommendation)
	})

	t.Run(findsubstitutes.TaskType, func(t *testing.T) {
		h := findsubstitutes.NewHandler(findsubstitutes.LoadConfig(), env.src, env.log)
		out, err := h.Execute(ctx, &findsubstitutes.Input{ProductID: "E2E-1"})
		require.NoError(t, err)
		require.NotEmpty(t, out.Substitutes)
		assert.Equal(t, "E2E-2", out.Substitutes[0].ID)
	})

	t.Run(fetchdemandsignal.TaskType, func(t *testing.T) {
		demand := news.NewService(news.NewClient(news.ClientConfig{}, nil), env.log)
		h := fetchdemandsignal.NewHandler(fetchdemandsignal.LoadConfig(), demand, env.src, env.log)
		out, err := h.Execute(ctx, &fetchdemandsignal.Input{ProductID: "E2E-1"})
		require.NoError(t, err)
		assert.Equal(t, "Cordless Drill", out.ProductName)
		assert.Equal(t, news.SourceNeutral, out.DemandSource)
	})

	t.Run(analyzeproduct.TaskType, func(t *testing.T) {
		h := analyzeproduct.NewHandler(analyzeproduct.LoadConfig(), env.svc, env.log)
		out, err := h.Execute(ctx, &analyzeproduct.Input{ProductID: "E2E-2"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AnalysisID)
		assert.NotEmpty(t, out.Recommendation)
	})
}

// testProcessInstance runs the deployed process against live job workers.
// Weather is unconfigured so fetch-weather-factor reports 0, and alerts are
// disabled so send-procurement-alert completes without sending.
func testProcessInstance(t *testing.T, env *e2eEnv) {
	handlers := map[string]camunda.JobHandler{
		lookuptariff.TaskType:         lookuptariff.NewHandler(lookuptariff.LoadConfig(), env.src, env.log),
		fetchdemandsignal.TaskType:    fetchdemandsignal.NewHandler(fetchdemandsignal.LoadConfig(), news.NewService(news.NewClient(news.ClientConfig{}, nil), env.log), env.src, env.log),
		fetchweatherfactor.TaskType:   fetchweatherfactor.NewHandler(fetchweatherfactor.LoadConfig(), staticWeather{}, env.log),
		analyzeproduct.TaskType:       analyzeproduct.NewHandler(analyzeproduct.LoadConfig(), env.svc, env.log),
		sendprocurementalert.TaskType: sendprocurementalert.NewHandler(sendprocurementalert.LoadConfig(), nil, nil, env.log),
	}

	var workers []*camunda.Worker
	for taskType, h := range handlers {
		workers = append(workers, camunda.OpenWorker(zeebeClient, camunda.WorkerOptions{
			TaskType:      taskType,
			MaxJobsActive: 1,
			Timeout:       30 * time.Second,
			Name:          "e2e",
		}, h, env.log))
	}
	defer func() {
		for _, w := range workers {
			w.Stop()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd, err := zeebeClient.NewCreateInstanceCommand().
		BPMNProcessId(processID).
		LatestVersion().
		VariablesFromMap(map[string]interface{}{"productId": "E2E-1"})
	require.NoError(t, err)

	result, err := cmd.WithResult().Send(ctx)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.GetVariables()), &vars))

	assert.Equal(t, 0.25, vars["tariffRate"])
	assert.Equal(t, 0.0, vars["weatherFactor"])
	assert.Equal(t, models.RecommendationUseSubstitute, vars["recommendation"])
	assert.Equal(t, false, vars["alertSent"])
	assert.NotEmpty(t, vars["analysisId"])
}

type staticWeather struct{}

func (staticWeather) Current(context.Context) models.WeatherSignal {
	return models.WeatherSignal{Factor: 0, Source: "unconfigured"}
}
