package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	discoveryhttpdelivery "github.com/rujira-labs/finsdk/discovery/delivery/http"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/log"
	"github.com/rujira-labs/finsdk/middleware"
	quotehttpdelivery "github.com/rujira-labs/finsdk/quote/delivery/http"
	"github.com/rujira-labs/finsdk/sdk"
	systemhttpdelivery "github.com/rujira-labs/finsdk/system/delivery/http"
	tokenshttpdelivery "github.com/rujira-labs/finsdk/tokens/delivery/http"

	_ "github.com/rujira-labs/finsdk/docs"
)

const tracerName = "finsdk-server"

// QueryServer serves quotes and discovery results over HTTP.
type QueryServer interface {
	Shutdown(context.Context) error
	Start(context.Context) error
}

type queryServer struct {
	e       *echo.Echo
	address string
	logger  log.Logger
}

// Shutdown implements QueryServer.
func (s *queryServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Start implements QueryServer.
func (s *queryServer) Start(context.Context) error {
	s.logger.Info("Starting quote server", zap.String("address", s.address))
	return s.e.Start(s.address)
}

// NewQueryServer registers the HTTP handlers of finSDK.
func NewQueryServer(finSDK *sdk.SDK, config domain.Config, logger log.Logger) QueryServer {
	e := echo.New()
	e.HideBanner = true

	middleware := middleware.InitMiddleware(config.CORS, logger)
	e.Use(middleware.RequestID)
	e.Use(middleware.Recover)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware(tracerName))

	quotehttpdelivery.NewQuoteHandler(e, finSDK.QuoteUsecase(), logger)
	discoveryhttpdelivery.NewDiscoveryHandler(e, finSDK.DiscoveryUsecase(), logger)
	tokenshttpdelivery.NewTokensHandler(e, finSDK.AssetRegistry(), finSDK.AddressValidator(), logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, finSDK.ChainClient(), finSDK.DiscoveryUsecase())

	return &queryServer{
		e:       e,
		address: config.ServerAddress,
		logger:  logger,
	}
}
