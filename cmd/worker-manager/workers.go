// cmd/worker-manager/workers.go
package main

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"procurement-workers/internal/catalog"
	"procurement-workers/internal/common/aws"
	"procurement-workers/internal/common/camunda"
	"procurement-workers/internal/common/config"
	"procurement-workers/internal/common/database"
	commonhttp "procurement-workers/internal/common/http"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/decision/similarity"
	"procurement-workers/internal/procurement"
	"procurement-workers/internal/signals/news"
	"procurement-workers/internal/signals/weather"

	ap "procurement-workers/internal/workers/procurement/analyze-product"
	fs "procurement-workers/internal/workers/procurement/find-substitutes"
	rp "procurement-workers/internal/workers/procurement/recommend-procurement"
	spa "procurement-workers/internal/workers/procurement/send-procurement-alert"
	fds "procurement-workers/internal/workers/signals/fetch-demand-signal"
	fwf "procurement-workers/internal/workers/signals/fetch-weather-factor"
	lt "procurement-workers/internal/workers/signals/lookup-tariff"
)

func breakerSettings(cfg *config.Config, name string, log logger.Logger) commonhttp.BreakerSettings {
	settings := commonhttp.DefaultBreakerSettings(name)
	settings.MaxRequests = cfg.APIs.Breaker.MaxRequests
	settings.Interval = config.GetDuration(cfg.APIs.Breaker.Interval)
	settings.Timeout = config.GetDuration(cfg.APIs.Breaker.Timeout)
	settings.ConsecutiveFailures = cfg.APIs.Breaker.ConsecutiveFailures
	settings.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn("Circuit breaker state changed", map[string]interface{}{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		})
	}
	return settings
}

func newDemandService(cfg *config.Config, redis *database.RedisClient, es *database.ElasticsearchClient, log logger.Logger) *news.Service {
	client := news.NewClient(news.ClientConfig{
		BaseURL:  cfg.APIs.News.BaseURL,
		APIKey:   cfg.APIs.News.APIKey,
		PageSize: cfg.APIs.News.PageSize,
	}, commonhttp.NewClient(config.GetDuration(cfg.APIs.News.Timeout), breakerSettings(cfg, "newsapi", log)))

	opts := []news.Option{
		news.WithCache(redis, time.Duration(cfg.Database.Redis.TTL)*time.Second),
	}
	if es != nil {
		opts = append(opts, news.WithFallback(news.NewArticleIndex(
			es.Client,
			cfg.Database.Elasticsearch.NewsIndex,
			cfg.Database.Elasticsearch.FallbackSize,
		)))
	}
	if cfg.APIs.News.FallbackFile != "" {
		opts = append(opts, news.WithFallback(news.NewArticleFile(cfg.APIs.News.FallbackFile)))
	}
	return news.NewService(client, log, opts...)
}

func newWeatherClient(cfg *config.Config, redis *database.RedisClient, log logger.Logger) *weather.Client {
	return weather.NewClient(weather.Config{
		BaseURL:  cfg.APIs.Weather.BaseURL,
		APIKey:   cfg.APIs.Weather.APIKey,
		Lat:      cfg.APIs.Weather.Lat,
		Lon:      cfg.APIs.Weather.Lon,
		CacheTTL: time.Duration(cfg.Database.Redis.TTL) * time.Second,
	}, commonhttp.NewClient(config.GetDuration(cfg.APIs.Weather.Timeout), breakerSettings(cfg, "openweathermap", log)), redis, log)
}

// buildHandlers constructs every job handler keyed by task type. Timeouts come
// from the worker section of the config when present.
func buildHandlers(
	ctx context.Context,
	cfg *config.Config,
	svc *procurement.Service,
	src catalog.Source,
	demand procurement.DemandSource,
	weatherSrc procurement.WeatherSource,
	log logger.Logger,
) (map[string]camunda.JobHandler, error) {
	timeout := func(taskType string, fallback time.Duration) time.Duration {
		if wcfg, ok := cfg.Workers[taskType]; ok && wcfg.Timeout > 0 {
			return config.GetDuration(wcfg.Timeout)
		}
		return fallback
	}

	handlers := map[string]camunda.JobHandler{}

	rpCfg := rp.LoadConfig()
	rpCfg.Timeout = timeout(rp.TaskType, rpCfg.Timeout)
	handlers[rp.TaskType] = rp.NewHandler(rpCfg, log)

	fsCfg := fs.LoadConfig()
	fsCfg.Timeout = timeout(fs.TaskType, fsCfg.Timeout)
	fsCfg.Similarity = similarity.Config{
		TopN:          cfg.Engine.SubstituteTopN,
		MinSimilarity: cfg.Engine.MinSimilarity,
		Precision:     fsCfg.Similarity.Precision,
	}
	handlers[fs.TaskType] = fs.NewHandler(fsCfg, src, log)

	apCfg := ap.LoadConfig()
	apCfg.Timeout = timeout(ap.TaskType, apCfg.Timeout)
	handlers[ap.TaskType] = ap.NewHandler(apCfg, svc, log)

	ltCfg := lt.LoadConfig()
	ltCfg.Timeout = timeout(lt.TaskType, ltCfg.Timeout)
	handlers[lt.TaskType] = lt.NewHandler(ltCfg, src, log)

	fdsCfg := fds.LoadConfig()
	fdsCfg.Timeout = timeout(fds.TaskType, fdsCfg.Timeout)
	handlers[fds.TaskType] = fds.NewHandler(fdsCfg, demand, src, log)

	fwfCfg := fwf.LoadConfig()
	fwfCfg.Timeout = timeout(fwf.TaskType, fwfCfg.Timeout)
	handlers[fwf.TaskType] = fwf.NewHandler(fwfCfg, weatherSrc, log)

	alert, err := newAlertHandler(ctx, cfg, timeout(spa.TaskType, spa.LoadConfig().Timeout), log)
	if err != nil {
		return nil, err
	}
	handlers[spa.TaskType] = alert

	return handlers, nil
}

func newAlertHandler(ctx context.Context, cfg *config.Config, timeout time.Duration, log logger.Logger) (*spa.Handler, error) {
	n := cfg.Notifications
	spaCfg := &spa.Config{
		Timeout:      timeout,
		AlertLabels:  n.AlertLabels,
		SNSEnabled:   n.SNS.Enabled,
		TopicARN:     n.SNS.TopicARN,
		EmailEnabled: n.Email.Enabled,
		FromEmail:    n.Email.FromEmail,
		Recipients:   n.Email.Recipients,
	}

	var publisher spa.TopicPublisher
	if n.SNS.Enabled {
		sns, err := aws.NewSNSClient(ctx, n.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create SNS client: %w", err)
		}
		publisher = sns
	}

	var email spa.EmailSender
	if n.Email.Enabled {
		ses, err := aws.NewSESClient(ctx, n.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create SES client: %w", err)
		}
		email = ses
	}

	return spa.NewHandler(spaCfg, publisher, email, log), nil
}
