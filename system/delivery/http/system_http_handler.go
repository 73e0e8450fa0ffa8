package http

import (
	"errors"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mvc"
	"github.com/rujira-labs/finsdk/log"
)

type SystemHandler struct {
	logger      log.Logger
	chainClient domain.ChainClient
	DUsecase    mvc.DiscoveryUsecase
	config      domain.Config
}

const (
	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"

	redacted = "[redacted]"

	versionFlag = "/version="
)

// HealthStatus is the response of the /healthcheck endpoint.
type HealthStatus struct {
	// Status is degraded while contract discovery has no usable result.
	Status            string                      `json:"status"`
	ChainID           string                      `json:"chain_id"`
	ChainLatestHeight uint64                      `json:"chain_latest_height"`
	Discovery         domain.DiscoveryCacheStatus `json:"discovery"`
}

// VersionResponse is the response of the /version endpoint.
type VersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

var errVersionNotFound = errors.New("no version in ldflags")

// NewSystemHandler will initialize the health, config, version, metrics and debug endpoints
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, chainClient domain.ChainClient, us mvc.DiscoveryUsecase) {
	handler := &SystemHandler{
		logger:      logger,
		chainClient: chainClient,
		DUsecase:    us,
		config:      redactConfig(config),
	}

	// Mutex and block profiles are too expensive for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	debugGroup := e.Group("/debug/pprof")
	debugGroup.GET("/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	debugGroup.GET("/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	debugGroup.GET("/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	debugGroup.GET("/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	debugGroup.GET("/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// redactConfig hides credentials before the config is served.
func redactConfig(config domain.Config) domain.Config {
	if config.Discovery != nil && config.Discovery.IndexerAPIKey != "" {
		discovery := *config.Discovery
		discovery.IndexerAPIKey = redacted
		config.Discovery = &discovery
	}
	if config.OTEL != nil && config.OTEL.DSN != "" {
		otelConfig := *config.OTEL
		otelConfig.DSN = redacted
		config.OTEL = &otelConfig
	}
	return config
}

// GetConfig returns the config the server was started with, without credentials.
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.config)
}

// GetVersion returns the version linked in with -ldflags, falling back to the module version.
func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read build info")
	}

	response := VersionResponse{
		Version:   buildInfo.Main.Version,
		GoVersion: buildInfo.GoVersion,
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key != "-ldflags" {
			continue
		}
		if version, err := ExtractVersion(setting.Value); err == nil {
			response.Version = version
		}
	}

	return c.JSON(http.StatusOK, response)
}

// ExtractVersion extracts the value of the -X .../version= flag from ldflags.
func ExtractVersion(ldFlags string) (string, error) {
	_, after, found := strings.Cut(ldFlags, versionFlag)
	if !found {
		return "", errVersionNotFound
	}

	version, _, _ := strings.Cut(after, " ")
	return version, nil
}

// GetHealthStatus reports the node height and the state of contract discovery.
// The service is unhealthy if the node cannot be reached.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx := c.Request().Context()

	latestHeight, err := h.chainClient.GetLatestHeight(ctx)
	if err != nil {
		h.logger.Error("Error checking node status", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to the THORChain node")
	}

	discoveryStatus := h.DUsecase.GetCacheStatus()

	status := healthStatusOK
	if !discoveryStatus.HasCache || discoveryStatus.ContractCount == 0 {
		status = healthStatusDegraded
	}

	return c.JSON(http.StatusOK, HealthStatus{
		Status:            status,
		ChainID:           h.config.ChainID,
		ChainLatestHeight: latestHeight,
		Discovery:         discoveryStatus,
	})
}
