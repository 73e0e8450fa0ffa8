package types

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rujira-labs/finsdk/domain"
)

// GetQuoteRequest represents the query of the /quote endpoint.
type GetQuoteRequest struct {
	domain.QuoteRequest
	Options domain.QuoteOptions
}

// UnmarshalHTTPRequest implements deliveryhttp.RequestUnmarshaler.
func (r *GetQuoteRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.FromAsset = c.QueryParam("fromAsset")
	r.ToAsset = c.QueryParam("toAsset")
	r.Amount = c.QueryParam("amount")
	r.DestinationAddress = c.QueryParam("destination")

	binder := echo.QueryParamsBinder(c)

	if err := binder.Uint32("slippageBps", &r.SlippageToleranceBps).BindError(); err != nil {
		return ErrSlippageNotValid
	}

	var maxStalenessMs uint32
	if err := binder.Uint32("maxStalenessMs", &maxStalenessMs).BindError(); err != nil {
		return ErrMaxStalenessNotValid
	}
	r.Options.MaxStaleness = time.Duration(maxStalenessMs) * time.Millisecond

	if err := binder.Bool("skipCache", &r.Options.SkipCache).BindError(); err != nil {
		return ErrSkipCacheNotValid
	}

	return nil
}

// Validate implements validator.Validator.
// Only presence is checked here, the quote engine validates the values.
func (r *GetQuoteRequest) Validate() error {
	if r.FromAsset == "" {
		return ErrFromAssetNotSpecified
	}
	if r.ToAsset == "" {
		return ErrToAssetNotSpecified
	}
	if r.Amount == "" {
		return ErrAmountNotSpecified
	}
	return nil
}

// GetRouteQuotesRequest represents the query of the /quote/routes/quotes endpoint.
// An empty route list quotes every configured route.
type GetRouteQuotesRequest struct {
	Routes      []string
	Amount      string
	Destination string
}

// UnmarshalHTTPRequest implements deliveryhttp.RequestUnmarshaler.
func (r *GetRouteQuotesRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.Routes = domain.ParseListQueryParam(c, "routes")
	r.Amount = c.QueryParam("amount")
	r.Destination = c.QueryParam("destination")
	return nil
}

// Validate implements validator.Validator.
func (r *GetRouteQuotesRequest) Validate() error {
	if r.Amount == "" {
		return ErrAmountNotSpecified
	}
	return nil
}
