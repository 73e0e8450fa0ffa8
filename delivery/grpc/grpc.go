// Package grpc opens the node gRPC connection that chain queries and transactions share.
package grpc

import (
	"crypto/tls"
	"fmt"
	"time"

	proto "github.com/cosmos/gogoproto/proto"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

const (
	// maxCallRecvMsgSize bounds responses such as deep order books and contract listings.
	maxCallRecvMsgSize = 10 * 1024 * 1024

	keepaliveTime    = 30 * time.Second
	keepaliveTimeout = 10 * time.Second
)

// gogoprotoCodec marshals with gogoproto since Cosmos SDK messages are gogoproto generated.
// See: https://github.com/cosmos/cosmos-sdk/issues/18430
type gogoprotoCodec struct{}

func (gogoprotoCodec) Marshal(v interface{}) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("%T is not a gogoproto message", v)
	}
	return proto.Marshal(msg)
}

func (gogoprotoCodec) Unmarshal(data []byte, v interface{}) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("%T is not a gogoproto message", v)
	}
	return proto.Unmarshal(data, msg)
}

func (gogoprotoCodec) Name() string {
	return "gogoproto"
}

// Client is a traced gRPC connection to a THORChain node.
type Client struct {
	*grpc.ClientConn
}

type options struct {
	tls bool
}

// Option configures NewClient.
type Option func(*options)

// WithTLS enables transport security. Public node endpoints on port 443 need it.
func WithTLS(enabled bool) Option {
	return func(o *options) {
		o.tls = enabled
	}
}

// NewClient creates a connection to the node gRPC endpoint. The connection is established lazily.
func NewClient(grpcEndpoint string, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	transportCredentials := insecure.NewCredentials()
	if o.tls {
		transportCredentials = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	grpcConn, err := grpc.NewClient(
		grpcEndpoint,
		grpc.WithTransportCredentials(transportCredentials),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                keepaliveTime,
			Timeout:             keepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithDefaultCallOptions(
			grpc.ForceCodec(gogoprotoCodec{}),
			grpc.MaxCallRecvMsgSize(maxCallRecvMsgSize),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for THORChain gRPC endpoint %s: %w", grpcEndpoint, err)
	}

	return &Client{ClientConn: grpcConn}, nil
}
