package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/rujira-labs/finsdk/delivery/http"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mvc"
	"github.com/rujira-labs/finsdk/log"
)

// DiscoveryHandler represent the httphandler for orderbook contract discovery
type DiscoveryHandler struct {
	DUsecase mvc.DiscoveryUsecase
	logger   log.Logger
}

// ContractAddressResponse is the response of the /discovery/contract endpoint.
type ContractAddressResponse struct {
	ContractAddress string `json:"contract_address"`
}

const resourcePrefix = "/discovery"

var errPairNotSpecified = errors.New("baseAsset and quoteAsset are required")

func formatDiscoveryResource(resource string) string {
	return resourcePrefix + resource
}

// NewDiscoveryHandler will initialize the /discovery resources endpoint
func NewDiscoveryHandler(e *echo.Echo, us mvc.DiscoveryUsecase, logger log.Logger) {
	handler := &DiscoveryHandler{
		DUsecase: us,
		logger:   logger,
	}

	e.GET(formatDiscoveryResource("/markets"), handler.ListMarkets)
	e.GET(formatDiscoveryResource("/market"), handler.FindMarket)
	e.GET(formatDiscoveryResource("/contract"), handler.GetContractAddress)
	e.GET(formatDiscoveryResource("/status"), handler.GetCacheStatus)
	e.POST(formatDiscoveryResource("/cache/clear"), handler.ClearCache)
}

// ListMarkets returns every market known from the last discovery cycle.
func (a *DiscoveryHandler) ListMarkets(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		deliveryhttp.RecordSpanError(span, err)
	}()

	markets, err := a.DUsecase.ListMarkets(ctx)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.NewResponseError(err))
	}

	return c.JSON(http.StatusOK, markets)
}

// FindMarket returns the market of the pair in either orientation.
func (a *DiscoveryHandler) FindMarket(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		deliveryhttp.RecordSpanError(span, err)
	}()

	baseAsset, quoteAsset, err := parsePair(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	market, found, err := a.DUsecase.FindMarket(ctx, baseAsset, quoteAsset)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.NewResponseError(err))
	}
	if !found {
		return c.JSON(http.StatusNotFound, domain.ResponseError{Message: "no market for " + domain.PairKey(baseAsset, quoteAsset), Kind: domain.ErrKindContractNotFound})
	}

	return c.JSON(http.StatusOK, market)
}

// GetContractAddress returns the orderbook contract address of the pair.
func (a *DiscoveryHandler) GetContractAddress(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		deliveryhttp.RecordSpanError(span, err)
	}()

	baseAsset, quoteAsset, err := parsePair(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	address, found, err := a.DUsecase.GetContractAddress(ctx, baseAsset, quoteAsset)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.NewResponseError(err))
	}
	if !found {
		return c.JSON(http.StatusNotFound, domain.ResponseError{Message: "no contract for " + domain.PairKey(baseAsset, quoteAsset), Kind: domain.ErrKindContractNotFound})
	}

	return c.JSON(http.StatusOK, ContractAddressResponse{ContractAddress: address})
}

// GetCacheStatus reports the state of the discovery cache.
func (a *DiscoveryHandler) GetCacheStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, a.DUsecase.GetCacheStatus())
}

// ClearCache forces the next lookup to run a discovery cycle.
func (a *DiscoveryHandler) ClearCache(c echo.Context) error {
	a.DUsecase.ClearCache()
	return c.NoContent(http.StatusNoContent)
}

func parsePair(c echo.Context) (string, string, error) {
	baseAsset := c.QueryParam("baseAsset")
	quoteAsset := c.QueryParam("quoteAsset")
	if baseAsset == "" || quoteAsset == "" {
		return "", "", errPairNotSpecified
	}
	return baseAsset, quoteAsset, nil
}
