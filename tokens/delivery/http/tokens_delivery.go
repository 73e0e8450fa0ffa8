package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/rujira-labs/finsdk/delivery/http"
	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/log"
)

// TokensHandler represent the httphandler for asset identifiers and addresses
type TokensHandler struct {
	registry  domain.AssetRegistry
	validator domain.AddressValidator
	logger    log.Logger
}

// AddressValidationResponse is the response of the /tokens/address endpoint.
type AddressValidationResponse struct {
	Asset   string `json:"asset"`
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
}

const tokensResource = "/tokens"

var (
	errAssetsNotSpecified  = errors.New("assets are required")
	errDenomsNotSpecified  = errors.New("denoms are required")
	errAddressNotSpecified = errors.New("asset and address are required")
)

func formatTokensResource(resource string) string {
	return tokensResource + resource
}

// NewTokensHandler will initialize the /tokens resources endpoint
func NewTokensHandler(e *echo.Echo, registry domain.AssetRegistry, validator domain.AddressValidator, logger log.Logger) {
	handler := &TokensHandler{
		registry:  registry,
		validator: validator,
		logger:    logger,
	}

	e.GET(formatTokensResource("/denoms"), handler.GetDenoms)
	e.GET(formatTokensResource("/assets"), handler.GetAssets)
	e.GET(formatTokensResource("/address"), handler.ValidateAddress)
}

// @Summary Chain denoms
// @Description returns the chain denom of every given asset identifier.
// @ID get-token-denoms
// @Produce  json
// @Param  assets  query  string  true  "Comma separated list of CHAIN.SYMBOL asset identifiers"
// @Success 200 {object} map[string]string "Success"
// @Router /tokens/denoms [get]
func (a *TokensHandler) GetDenoms(c echo.Context) (err error) {
	_, span := deliveryhttp.Span(c)
	defer func() {
		deliveryhttp.RecordSpanError(span, err)
	}()

	assets := domain.ParseListQueryParam(c, "assets")
	if len(assets) == 0 {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: errAssetsNotSpecified.Error()})
	}

	denoms := make(map[string]string, len(assets))
	for _, asset := range assets {
		denom, err := a.registry.AssetToDenom(asset)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.NewResponseError(err))
		}
		denoms[asset] = denom
	}

	return c.JSON(http.StatusOK, denoms)
}

// @Summary Asset identifiers
// @Description returns the asset identifier of every given chain denom.
// @ID get-token-assets
// @Produce  json
// @Param  denoms  query  string  true  "Comma separated list of chain denoms"
// @Success 200 {object} map[string]string "Success"
// @Router /tokens/assets [get]
func (a *TokensHandler) GetAssets(c echo.Context) (err error) {
	_, span := deliveryhttp.Span(c)
	defer func() {
		deliveryhttp.RecordSpanError(span, err)
	}()

	denoms := domain.ParseListQueryParam(c, "denoms")
	if len(denoms) == 0 {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: errDenomsNotSpecified.Error()})
	}

	assets := make(map[string]string, len(denoms))
	for _, denom := range denoms {
		asset, err := a.registry.DenomToAsset(denom)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.NewResponseError(err))
		}
		assets[denom] = asset
	}

	return c.JSON(http.StatusOK, assets)
}

// @Summary Validate address
// @Description checks that an address is valid on the chain of the given asset.
// @ID validate-address
// @Produce  json
// @Param  asset  query  string  true  "Asset identifier"
// @Param  address  query  string  true  "Address to validate"
// @Success 200 {object} AddressValidationResponse "Success"
// @Router /tokens/address [get]
func (a *TokensHandler) ValidateAddress(c echo.Context) (err error) {
	_, span := deliveryhttp.Span(c)
	defer func() {
		deliveryhttp.RecordSpanError(span, err)
	}()

	asset, address := c.QueryParam("asset"), c.QueryParam("address")
	if asset == "" || address == "" {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: errAddressNotSpecified.Error()})
	}

	response := AddressValidationResponse{Asset: asset, Address: address, Valid: true}
	if err := a.validator.ValidateAddress(asset, address); err != nil {
		response.Valid = false
		response.Reason = err.Error()
	}

	return c.JSON(http.StatusOK, response)
}
