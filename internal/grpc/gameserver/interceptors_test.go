package gameserver

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: fullMethod("Reveal")}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  string
		wantLevel string
	}{
		{"OK", nil, "OK", "info"},
		{"ClientError", status.Error(codes.NotFound, "game missing"), "NotFound", "warn"},
		{"ServerError", status.Error(codes.Internal, "broken"), "Internal", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			intercept := LoggingInterceptor(zerolog.New(&buf))

			resp, err := intercept(context.Background(), "req", testInfo,
				func(ctx context.Context, req interface{}) (interface{}, error) {
					return "resp", tt.err
				})
			assert.Equal(t, "resp", resp)
			assert.Equal(t, tt.err, err)

			var line map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.wantCode, line["code"])
			assert.Equal(t, "/minesweeper.v1.BoardService/Reveal", line["method"])
			assert.Equal(t, "grpc", line["component"])
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	intercept := RecoveryInterceptor(zerolog.Nop())

	t.Run("Panic", func(t *testing.T) {
		resp, err := intercept(context.Background(), "req", testInfo,
			func(ctx context.Context, req interface{}) (interface{}, error) {
				panic("boom")
			})
		assert.Nil(t, resp)
		assert.Equal(t, codes.Internal, status.Code(err))
	})

	t.Run("PassThrough", func(t *testing.T) {
		resp, err := intercept(context.Background(), "req", testInfo,
			func(ctx context.Context, req interface{}) (interface{}, error) {
				return "ok", nil
			})
		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})
}
