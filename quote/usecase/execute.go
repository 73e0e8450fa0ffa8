package quoteusecase

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/json"
	"github.com/rujira-labs/finsdk/quote/telemetry"
)

// swapMsg is the orderbook contract execute message for a market swap with a minimum return guard.
type swapMsg struct {
	Swap swapRequest `json:"swap"`
}

type swapRequest struct {
	Min swapMin `json:"min"`
}

type swapMin struct {
	MinReturn string `json:"min_return"`
	To        string `json:"to,omitempty"`
}

// Execute implements mvc.QuoteUsecase.
func (q *quoteUseCase) Execute(ctx context.Context, quote domain.SwapQuote, opts domain.ExecuteOptions) (domain.SwapResult, error) {
	ctx, span := tracer.Start(ctx, "quoteUseCase.Execute")
	defer span.End()

	if quote.IsExpired(q.clock.Now(), q.config.ExpiryBuffer()) {
		return domain.SwapResult{}, domain.NewSDKError(domain.ErrKindQuoteExpired, fmt.Sprintf("quote %s expires at %s, within the %s execution buffer", quote.QuoteID, quote.ExpiresAt, q.config.ExpiryBuffer()), nil)
	}

	sender, err := q.sender(ctx, opts)
	if err != nil {
		return domain.SwapResult{}, err
	}

	denom, err := q.assetRegistry.AssetToDenom(quote.Request.FromAsset)
	if err != nil {
		return domain.SwapResult{}, err
	}

	amount, err := parseAmount(quote.Request.Amount)
	if err != nil {
		return domain.SwapResult{}, err
	}

	if !opts.SkipBalanceCheck {
		balance, err := q.chainClient.GetBalance(ctx, sender, denom)
		if err != nil {
			return domain.SwapResult{}, domain.NormalizeError(err)
		}
		if balance.LT(amount) {
			return domain.SwapResult{}, domain.NewInsufficientBalanceError(denom, amount, balance)
		}
	}

	minimumOutput := quote.MinimumOutput
	if opts.SlippageToleranceBps != 0 {
		if err := validateSlippage(opts.SlippageToleranceBps); err != nil {
			return domain.SwapResult{}, err
		}
		minimumOutput = domain.ComputeMinimumOutput(quote.ExpectedOutput, opts.SlippageToleranceBps)
	}

	destination := quote.Request.DestinationAddress
	if destination == "" {
		destination = sender
	}

	msg, err := json.Marshal(swapMsg{
		Swap: swapRequest{
			Min: swapMin{
				MinReturn: minimumOutput.String(),
				To:        destination,
			},
		},
	})
	if err != nil {
		return domain.SwapResult{}, err
	}

	funds := sdk.Coins{sdk.Coin{Denom: denom, Amount: amount}}

	txHash, err := q.chainClient.ExecuteContract(ctx, sender, quote.ContractAddress, msg, funds, opts.Memo)
	if err != nil {
		return domain.SwapResult{}, domain.NormalizeError(err)
	}

	telemetry.SwapsSubmittedCounter.Inc()

	q.logger.Info("submitted swap",
		zap.String("tx_hash", txHash),
		zap.String("quote_id", quote.QuoteID),
		zap.String("contract", quote.ContractAddress),
		zap.String("sender", sender),
		zap.Stringer("amount_in", amount),
		zap.Stringer("minimum_output", minimumOutput),
	)

	return domain.SwapResult{
		TxHash:          txHash,
		QuoteID:         quote.QuoteID,
		ContractAddress: quote.ContractAddress,
		Sender:          sender,
		AmountIn:        amount,
		MinimumOutput:   minimumOutput,
	}, nil
}

// ExecuteSwap implements mvc.QuoteUsecase.
func (q *quoteUseCase) ExecuteSwap(ctx context.Context, req domain.QuoteRequest, quoteOpts domain.QuoteOptions, execOpts domain.ExecuteOptions) (domain.SwapResult, error) {
	quote, err := q.GetQuote(ctx, req, quoteOpts)
	if err != nil {
		return domain.SwapResult{}, err
	}
	return q.Execute(ctx, quote, execOpts)
}

// sender returns the address swaps are sent from. An explicit sender must match the
// broadcaster's key, which signs the transaction.
func (q *quoteUseCase) sender(ctx context.Context, opts domain.ExecuteOptions) (string, error) {
	if q.broadcaster == nil {
		if opts.Sender == "" {
			return "", domain.NewSDKError(domain.ErrKindInvalidAddress, "no sender given and no signer configured", nil)
		}
		return opts.Sender, nil
	}

	sender, err := q.broadcaster.SenderAddress(ctx)
	if err != nil {
		return "", domain.NewSDKError(domain.ErrKindInvalidAddress, "failed to derive sender address", err)
	}

	if opts.Sender != "" && opts.Sender != sender {
		return "", domain.NewSDKError(domain.ErrKindInvalidAddress, fmt.Sprintf("sender %s does not match signer address %s", opts.Sender, sender), nil)
	}
	return sender, nil
}
