package di

import (
	"fmt"

	"Horary/internal/domain/repository"
	"Horary/internal/handler/api"
	internalrepo "Horary/internal/repository"
	"Horary/internal/services/horary"
	"Horary/internal/usecase"
	"Horary/pkg/cache"
	"Horary/pkg/config"
	xhttp "Horary/pkg/http"
	applogger "Horary/pkg/logger"
	"Horary/pkg/metrics"
	"Horary/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	log, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}

// ProvideGeocodeCache creates the geocode result cache. With Redis enabled it
// layers memory over Redis, otherwise it is memory only.
func ProvideGeocodeCache(cfg *config.Config, log *applogger.Logger) (cache.Service, error) {
	if !cfg.Geocoding.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Geocoding.Redis.Addr),
		cache.WithRedisPassword(cfg.Geocoding.Redis.Password),
		cache.WithRedisDB(cfg.Geocoding.Redis.DB),
	)
	if err != nil {
		// A dead Redis should not keep charts from being judged.
		log.Warn("redis unavailable, using memory cache only", applogger.Error(err))
		return cache.NewMemoryCache(), nil
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideGeocoder creates the Nominatim geocoder.
func ProvideGeocoder(cfg *config.Config, store cache.Service, log *applogger.Logger) repository.Geocoder {
	return internalrepo.NewNominatimGeocoder(
		cfg.Geocoding.BaseURL,
		cfg.Geocoding.UserAgent,
		cfg.Geocoding.Timeout,
		cfg.Geocoding.CacheTTL,
		store,
		log,
	)
}

// ProvideEphemeris creates the ephemeris sidecar client.
func ProvideEphemeris(cfg *config.Config, log *applogger.Logger) repository.Ephemeris {
	return internalrepo.NewEphemerisClient(cfg.Ephemeris.BaseURL, cfg.Ephemeris.Timeout, log)
}

// ProvideCalculator creates the chart calculator.
func ProvideCalculator(cfg *config.Config, log *applogger.Logger) *horary.Calculator {
	return horary.NewCalculator(cfg, log)
}

// ProvideQuestionAnalyzer creates the question classifier.
func ProvideQuestionAnalyzer(cfg *config.Config, log *applogger.Logger) *horary.QuestionAnalyzer {
	return horary.NewQuestionAnalyzer(cfg, log)
}

// ProvideJudge creates the judgment procedure.
func ProvideJudge(cfg *config.Config, log *applogger.Logger, calc *horary.Calculator) *horary.Judge {
	return horary.NewJudge(cfg, log, calc)
}

// ProvideJudgmentService creates the judgment orchestrator.
func ProvideJudgmentService(
	cfg *config.Config,
	log *applogger.Logger,
	geocoder repository.Geocoder,
	ephemeris repository.Ephemeris,
	m repository.Metrics,
	analyzer *horary.QuestionAnalyzer,
	calc *horary.Calculator,
	judge *horary.Judge,
) *usecase.JudgmentService {
	return usecase.NewJudgmentService(cfg, log, geocoder, ephemeris, m, analyzer, calc, judge)
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(log *applogger.Logger, judge *usecase.JudgmentService) xhttp.Handler {
	return api.NewJudgmentEchoHandler(log, judge)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, store cache.Service) *server.App {
	return server.New(cfg, log, handler, store)
}
