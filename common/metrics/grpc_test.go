package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestSplitMethodName(t *testing.T) {
	service, method := splitMethodName("/grpc.health.v1.Health/Check")
	assert.Equal(t, "grpc.health.v1.Health", service)
	assert.Equal(t, "Check", method)

	service, method = splitMethodName("Check")
	assert.Equal(t, "unknown", service)
	assert.Equal(t, "Check", method)
}

func TestUnaryServerInterceptor_MockPassesThrough(t *testing.T) {
	interceptor := NewMock().Grpc.UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	boom := errors.New("boom")
	_, err = interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
