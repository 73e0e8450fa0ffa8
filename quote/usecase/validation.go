package quoteusecase

import (
	"fmt"
	"strings"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/rujira-labs/finsdk/domain"
)

// validateRequest checks req without any I/O. It returns req with assets upper-cased,
// the default slippage applied and the parsed amount.
func (q *quoteUseCase) validateRequest(req domain.QuoteRequest) (domain.QuoteRequest, osmomath.Int, error) {
	req.FromAsset = strings.ToUpper(strings.TrimSpace(req.FromAsset))
	req.ToAsset = strings.ToUpper(strings.TrimSpace(req.ToAsset))
	req.DestinationAddress = strings.TrimSpace(req.DestinationAddress)

	for _, asset := range []string{req.FromAsset, req.ToAsset} {
		if _, err := q.assetRegistry.AssetToDenom(asset); err != nil {
			return domain.QuoteRequest{}, osmomath.Int{}, err
		}
	}

	if req.FromAsset == req.ToAsset {
		return domain.QuoteRequest{}, osmomath.Int{}, domain.NewSDKError(domain.ErrKindInvalidPair, fmt.Sprintf("cannot swap %s to itself", req.FromAsset), nil)
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return domain.QuoteRequest{}, osmomath.Int{}, err
	}
	req.Amount = amount.String()

	if req.SlippageToleranceBps == 0 {
		req.SlippageToleranceBps = q.config.DefaultSlippageBps
	}
	if err := validateSlippage(req.SlippageToleranceBps); err != nil {
		return domain.QuoteRequest{}, osmomath.Int{}, err
	}

	if req.DestinationAddress != "" {
		if err := q.addressValidator.ValidateAddress(settlementAsset, req.DestinationAddress); err != nil {
			return domain.QuoteRequest{}, osmomath.Int{}, err
		}
	}

	return req, amount, nil
}

func parseAmount(amount string) (osmomath.Int, error) {
	parsed, ok := osmomath.NewIntFromString(strings.TrimSpace(amount))
	if !ok {
		return osmomath.Int{}, domain.NewSDKError(domain.ErrKindInvalidAmount, fmt.Sprintf("amount %q is not an integer", amount), nil)
	}
	if !parsed.IsPositive() {
		return osmomath.Int{}, domain.NewSDKError(domain.ErrKindInvalidAmount, fmt.Sprintf("amount %s must be positive", amount), nil)
	}
	return parsed, nil
}

func validateSlippage(slippageBps uint32) error {
	if slippageBps < 1 || slippageBps > domain.MaxSlippageToleranceBps {
		return domain.NewSDKError(domain.ErrKindInvalidSlippage, fmt.Sprintf("slippage tolerance %d bps must be within [1, %d]", slippageBps, domain.MaxSlippageToleranceBps), nil)
	}
	return nil
}
