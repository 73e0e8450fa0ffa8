package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	deliveryhttp "github.com/rujira-labs/finsdk/delivery/http"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/mvc"
	"github.com/rujira-labs/finsdk/log"
	"github.com/rujira-labs/finsdk/quote/types"
)

// QuoteHandler represent the httphandler for swap quotes
type QuoteHandler struct {
	QUsecase mvc.QuoteUsecase
	logger   log.Logger
}

const resourcePrefix = "/quote"

func formatQuoteResource(resource string) string {
	return resourcePrefix + resource
}

// NewQuoteHandler will initialize the /quote resources endpoint
func NewQuoteHandler(e *echo.Echo, us mvc.QuoteUsecase, logger log.Logger) {
	handler := &QuoteHandler{
		QUsecase: us,
		logger:   logger,
	}

	e.GET(resourcePrefix, handler.GetQuote)
	e.GET(formatQuoteResource("/routes"), handler.GetRoutes)
	e.GET(formatQuoteResource("/routes/quotes"), handler.GetRouteQuotes)
	e.POST(formatQuoteResource("/cache/clear"), handler.ClearCache)
}

// @Summary Quote a swap on the orderbook contract of the pair
// @Param  fromAsset       query  string  true   "Asset offered, e.g. BTC.BTC"
// @Param  toAsset         query  string  true   "Asset asked, e.g. THOR.RUNE"
// @Param  amount          query  string  true   "Amount offered in base units"
// @Param  slippageBps     query  int     false  "Slippage tolerance in basis points"
// @Param  destination     query  string  false  "Address receiving the output"
// @Param  skipCache       query  bool    false  "Force a fresh quote"
// @Param  maxStalenessMs  query  int     false  "Maximum age of a cached quote"
// @Success 200  {object}  domain.SwapQuote
// @Router /quote [get]
func (a *QuoteHandler) GetQuote(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		deliveryhttp.RecordSpanError(span, err)
	}()

	var req types.GetQuoteRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	quote, err := a.QUsecase.GetQuote(ctx, req.QuoteRequest, req.Options)
	if err != nil {
		return c.JSON(getStatusCode(err), domain.NewResponseError(err))
	}

	return c.JSON(http.StatusOK, quote)
}

// GetRoutes returns the configured named routes.
func (a *QuoteHandler) GetRoutes(c echo.Context) error {
	return c.JSON(http.StatusOK, a.QUsecase.GetRoutes())
}

// GetRouteQuotes quotes the requested routes, or all configured routes if none are given.
// Routes that could not be quoted are null in the response.
func (a *QuoteHandler) GetRouteQuotes(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetRouteQuotesRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	var quotes map[string]*domain.SwapQuote
	if len(req.Routes) == 0 {
		quotes = a.QUsecase.GetAllRouteQuotes(ctx, req.Amount, req.Destination)
	} else {
		quotes = a.QUsecase.BatchGetQuotes(ctx, req.Routes, req.Amount, req.Destination)
	}

	return c.JSON(http.StatusOK, quotes)
}

// ClearCache drops all cached quotes.
func (a *QuoteHandler) ClearCache(c echo.Context) error {
	a.QUsecase.ClearCache()
	return c.NoContent(http.StatusNoContent)
}

func getStatusCode(err error) int {
	statusCode := domain.GetStatusCode(err)
	if statusCode >= http.StatusInternalServerError {
		logrus.Error(err)
	}
	return statusCode
}
