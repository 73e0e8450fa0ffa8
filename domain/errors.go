package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/osmosis-labs/osmosis/osmomath"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind is the normalized category of every error surfaced by the SDK.
type ErrorKind string

const (
	ErrKindInvalidAsset        ErrorKind = "InvalidAsset"
	ErrKindInvalidAmount       ErrorKind = "InvalidAmount"
	ErrKindInvalidPair         ErrorKind = "InvalidPair"
	ErrKindInvalidSlippage     ErrorKind = "InvalidSlippage"
	ErrKindInvalidAddress      ErrorKind = "InvalidAddress"
	ErrKindNetworkError        ErrorKind = "NetworkError"
	ErrKindRpcError            ErrorKind = "RpcError"
	ErrKindTimeout             ErrorKind = "Timeout"
	ErrKindContractNotFound    ErrorKind = "ContractNotFound"
	ErrKindContractError       ErrorKind = "ContractError"
	ErrKindInsufficientBalance ErrorKind = "InsufficientBalance"
	ErrKindQuoteExpired        ErrorKind = "QuoteExpired"
)

// IsRetryable returns true for transient kinds.
func (k ErrorKind) IsRetryable() bool {
	switch k {
	case ErrKindNetworkError, ErrKindRpcError, ErrKindTimeout:
		return true
	default:
		return false
	}
}

// Sentinels usable with errors.Is. Only the kind is compared.
var (
	ErrInvalidAsset        = &SDKError{Kind: ErrKindInvalidAsset}
	ErrInvalidAmount       = &SDKError{Kind: ErrKindInvalidAmount}
	ErrInvalidPair         = &SDKError{Kind: ErrKindInvalidPair}
	ErrInvalidSlippage     = &SDKError{Kind: ErrKindInvalidSlippage}
	ErrInvalidAddress      = &SDKError{Kind: ErrKindInvalidAddress}
	ErrNetwork             = &SDKError{Kind: ErrKindNetworkError}
	ErrRpc                 = &SDKError{Kind: ErrKindRpcError}
	ErrTimeout             = &SDKError{Kind: ErrKindTimeout}
	ErrContractNotFound    = &SDKError{Kind: ErrKindContractNotFound}
	ErrContractError       = &SDKError{Kind: ErrKindContractError}
	ErrInsufficientBalance = &SDKError{Kind: ErrKindInsufficientBalance}
	ErrQuoteExpired        = &SDKError{Kind: ErrKindQuoteExpired}
)

// BalanceShortfall details an InsufficientBalance error.
type BalanceShortfall struct {
	Required  osmomath.Int `json:"required"`
	Available osmomath.Int `json:"available"`
	Shortfall osmomath.Int `json:"shortfall"`
}

// SDKError is the normalized error returned to callers.
type SDKError struct {
	Kind      ErrorKind
	Message   string
	Retryable bool
	// Shortfall is only set for ErrKindInsufficientBalance.
	Shortfall *BalanceShortfall
	Err       error
}

// NewSDKError creates a new error of the given kind. Retryability follows the kind.
func NewSDKError(kind ErrorKind, message string, err error) *SDKError {
	return &SDKError{
		Kind:      kind,
		Message:   message,
		Retryable: kind.IsRetryable(),
		Err:       err,
	}
}

// NewInsufficientBalanceError creates an InsufficientBalance error with the shortfall attached.
func NewInsufficientBalanceError(denom string, required, available osmomath.Int) *SDKError {
	shortfall := required.Sub(available)
	return &SDKError{
		Kind:    ErrKindInsufficientBalance,
		Message: fmt.Sprintf("insufficient %s balance: required %s, available %s, shortfall %s", denom, required, available, shortfall),
		Shortfall: &BalanceShortfall{
			Required:  required,
			Available: available,
			Shortfall: shortfall,
		},
	}
}

// Error implements the error interface.
func (e *SDKError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is matches any SDKError of the same kind.
func (e *SDKError) Is(target error) bool {
	t, ok := target.(*SDKError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of a normalized error, or the empty kind if err is not an SDKError.
func KindOf(err error) ErrorKind {
	var sdkErr *SDKError
	if errors.As(err, &sdkErr) {
		return sdkErr.Kind
	}
	return ""
}

// IndexerHTTPError is returned by the indexer client on a non-2xx response.
type IndexerHTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface.
func (e *IndexerHTTPError) Error() string {
	return fmt.Sprintf("indexer request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// IndexerDecodeError is returned by the indexer client when a response body is not the expected JSON.
type IndexerDecodeError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *IndexerDecodeError) Error() string {
	return fmt.Sprintf("failed to decode indexer response from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *IndexerDecodeError) Unwrap() error {
	return e.Err
}

// normalizationRule maps an error to an SDKError if it recognizes it.
type normalizationRule struct {
	name     string
	classify func(err error) (*SDKError, bool)
}

// messageHeuristic maps message substrings to a kind.
type messageHeuristic struct {
	substrings []string
	kind       ErrorKind
}

var messageHeuristics = []messageHeuristic{
	{substrings: []string{"insufficient funds", "insufficient balance"}, kind: ErrKindInsufficientBalance},
	{substrings: []string{"timeout", "timed out", "deadline exceeded"}, kind: ErrKindTimeout},
	{substrings: []string{"no such contract", "contract not found", "not found"}, kind: ErrKindContractNotFound},
	{substrings: []string{"connection refused", "connection reset", "no such host", "broken pipe", "eof"}, kind: ErrKindNetworkError},
	{substrings: []string{"execute wasm contract failed", "query wasm contract failed", "generic error", "contract error"}, kind: ErrKindContractError},
}

// normalizationRules are evaluated top to bottom; the first match wins.
// Typed errors come first, then structured codes, then message heuristics.
var normalizationRules = []normalizationRule{
	{
		name: "sdk-error",
		classify: func(err error) (*SDKError, bool) {
			var sdkErr *SDKError
			if errors.As(err, &sdkErr) {
				return sdkErr, true
			}
			return nil, false
		},
	},
	{
		name: "discovery-auth",
		classify: func(err error) (*SDKError, bool) {
			var authErr DiscoveryAuthError
			if !errors.As(err, &authErr) {
				return nil, false
			}
			sdkErr := NewSDKError(ErrKindRpcError, "indexed discovery API rejected credentials", err)
			sdkErr.Retryable = false
			return sdkErr, true
		},
	},
	{
		name: "context",
		classify: func(err error) (*SDKError, bool) {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return NewSDKError(ErrKindTimeout, "request did not complete in time", err), true
			}
			return nil, false
		},
	},
	{
		name: "net-timeout",
		classify: func(err error) (*SDKError, bool) {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return NewSDKError(ErrKindTimeout, "network timeout", err), true
			}
			return nil, false
		},
	},
	{
		name: "grpc-status",
		classify: func(err error) (*SDKError, bool) {
			st, ok := status.FromError(err)
			if !ok {
				return nil, false
			}
			switch st.Code() {
			case codes.DeadlineExceeded:
				return NewSDKError(ErrKindTimeout, st.Message(), err), true
			case codes.Unavailable, codes.Canceled:
				return NewSDKError(ErrKindNetworkError, st.Message(), err), true
			case codes.NotFound:
				return NewSDKError(ErrKindContractNotFound, st.Message(), err), true
			case codes.InvalidArgument, codes.FailedPrecondition:
				return NewSDKError(ErrKindContractError, st.Message(), err), true
			case codes.ResourceExhausted, codes.Internal, codes.Unauthenticated, codes.PermissionDenied:
				return NewSDKError(ErrKindRpcError, st.Message(), err), true
			default:
				// Unknown codes carry contract errors as plain text; let the heuristics decide.
				return nil, false
			}
		},
	},
	{
		name: "indexer-http",
		classify: func(err error) (*SDKError, bool) {
			var httpErr *IndexerHTTPError
			if !errors.As(err, &httpErr) {
				return nil, false
			}
			switch {
			case httpErr.StatusCode == http.StatusNotFound:
				return NewSDKError(ErrKindContractNotFound, "market not found", err), true
			case httpErr.StatusCode == http.StatusRequestTimeout || httpErr.StatusCode == http.StatusGatewayTimeout:
				return NewSDKError(ErrKindTimeout, "indexer timeout", err), true
			default:
				return NewSDKError(ErrKindRpcError, "indexer request failed", err), true
			}
		},
	},
	{
		name: "indexer-decode",
		classify: func(err error) (*SDKError, bool) {
			var decodeErr *IndexerDecodeError
			if errors.As(err, &decodeErr) {
				return NewSDKError(ErrKindRpcError, "malformed indexer response", err), true
			}
			return nil, false
		},
	},
	{
		name: "net-op",
		classify: func(err error) (*SDKError, bool) {
			var opErr *net.OpError
			var urlErr *url.Error
			if errors.As(err, &opErr) || errors.As(err, &urlErr) {
				return NewSDKError(ErrKindNetworkError, "network failure", err), true
			}
			return nil, false
		},
	},
	{
		name: "message-heuristics",
		classify: func(err error) (*SDKError, bool) {
			msg := strings.ToLower(err.Error())
			for _, heuristic := range messageHeuristics {
				for _, substring := range heuristic.substrings {
					if strings.Contains(msg, substring) {
						return NewSDKError(heuristic.kind, err.Error(), err), true
					}
				}
			}
			return nil, false
		},
	},
}

// NormalizeError converts any error into an *SDKError. Returns nil for a nil error.
// Errors no rule recognizes become RpcError.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}
	for _, rule := range normalizationRules {
		if sdkErr, ok := rule.classify(err); ok {
			return sdkErr
		}
	}
	return NewSDKError(ErrKindRpcError, "unclassified error", err)
}

// DiscoveryErrorClass is the class of an indexed discovery API failure.
// It decides whether discovery falls back to scanning the chain.
type DiscoveryErrorClass string

const (
	DiscoveryErrorAuth     DiscoveryErrorClass = "auth"
	DiscoveryErrorServer   DiscoveryErrorClass = "server"
	DiscoveryErrorNetwork  DiscoveryErrorClass = "network"
	DiscoveryErrorTimeout  DiscoveryErrorClass = "timeout"
	DiscoveryErrorProtocol DiscoveryErrorClass = "protocol"
	DiscoveryErrorUnknown  DiscoveryErrorClass = "unknown"
)

// AllowsFallback returns true if a chain scan may resolve the failure.
// Authentication failures are structural and must surface.
func (c DiscoveryErrorClass) AllowsFallback() bool {
	return c != DiscoveryErrorAuth
}

type discoveryClassificationRule struct {
	class DiscoveryErrorClass
	match func(err error) bool
}

var discoveryClassificationRules = []discoveryClassificationRule{
	{
		class: DiscoveryErrorAuth,
		match: func(err error) bool {
			var httpErr *IndexerHTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden
			}
			if st, ok := status.FromError(err); ok {
				return st.Code() == codes.Unauthenticated || st.Code() == codes.PermissionDenied
			}
			return false
		},
	},
	{
		class: DiscoveryErrorTimeout,
		match: func(err error) bool {
			if errors.Is(err, context.DeadlineExceeded) {
				return true
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return true
			}
			var httpErr *IndexerHTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode == http.StatusRequestTimeout || httpErr.StatusCode == http.StatusGatewayTimeout
			}
			return false
		},
	},
	{
		class: DiscoveryErrorServer,
		match: func(err error) bool {
			var httpErr *IndexerHTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode >= http.StatusInternalServerError || httpErr.StatusCode == http.StatusTooManyRequests
			}
			return false
		},
	},
	{
		class: DiscoveryErrorNetwork,
		match: func(err error) bool {
			var opErr *net.OpError
			var urlErr *url.Error
			return errors.As(err, &opErr) || errors.As(err, &urlErr)
		},
	},
	{
		class: DiscoveryErrorProtocol,
		match: func(err error) bool {
			var decodeErr *IndexerDecodeError
			if errors.As(err, &decodeErr) {
				return true
			}
			var httpErr *IndexerHTTPError
			if errors.As(err, &httpErr) {
				// Remaining 4xx responses mean the API contract changed under us.
				return true
			}
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
		},
	},
}

// ClassifyDiscoveryError returns the class of an indexer failure. First match wins.
func ClassifyDiscoveryError(err error) DiscoveryErrorClass {
	for _, rule := range discoveryClassificationRules {
		if rule.match(err) {
			return rule.class
		}
	}
	return DiscoveryErrorUnknown
}

// DiscoveryAuthError wraps an authentication failure of the indexed discovery API.
type DiscoveryAuthError struct {
	Err error
}

// Error implements the error interface.
func (e DiscoveryAuthError) Error() string {
	return fmt.Sprintf("indexed discovery API rejected credentials: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e DiscoveryAuthError) Unwrap() error {
	return e.Err
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message   string            `json:"message"`
	Kind      ErrorKind         `json:"kind,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
	Shortfall *BalanceShortfall `json:"shortfall,omitempty"`
}

// NewResponseError converts err into the response body returned by the HTTP handlers.
func NewResponseError(err error) ResponseError {
	var sdkErr *SDKError
	if !errors.As(err, &sdkErr) {
		return ResponseError{Message: err.Error()}
	}
	return ResponseError{
		Message:   err.Error(),
		Kind:      sdkErr.Kind,
		Retryable: sdkErr.Retryable,
		Shortfall: sdkErr.Shortfall,
	}
}

// GetStatusCode returns the HTTP status code for the kind of err.
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch KindOf(err) {
	case ErrKindInvalidAsset, ErrKindInvalidAmount, ErrKindInvalidPair, ErrKindInvalidSlippage, ErrKindInvalidAddress:
		return http.StatusBadRequest
	case ErrKindContractNotFound:
		return http.StatusNotFound
	case ErrKindInsufficientBalance:
		return http.StatusPaymentRequired
	case ErrKindQuoteExpired:
		return http.StatusGone
	case ErrKindTimeout:
		return http.StatusGatewayTimeout
	case ErrKindNetworkError, ErrKindRpcError, ErrKindContractError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
