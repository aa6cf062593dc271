// Package interceptors holds the unary interceptors of the pebbles gRPC server.
package interceptors

import (
	"context"
	"log"
	"strings"
	"time"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"github.com/louisbranch/pebbles/internal/platform/requestctx"
	"github.com/louisbranch/pebbles/internal/services/pebbles/storage"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stateGetter interface {
	GetState() *pebblesv1.GameState
}

// AuditInterceptor appends an audit event for every unary call. Store
// failures are logged and never change the call result.
func AuditInterceptor(store storage.AuditStore, clock func() time.Time) grpc.UnaryServerInterceptor {
	if clock == nil {
		clock = time.Now
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := clock()
		resp, err := handler(ctx, req)
		if store == nil {
			return resp, err
		}

		code := codes.OK
		if err != nil {
			code = codes.Unknown
			if st, ok := status.FromError(err); ok {
				code = st.Code()
			}
		}

		var traceID, spanID string
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			traceID = sc.TraceID().String()
			spanID = sc.SpanID().String()
		}

		evt := storage.AuditEvent{
			Timestamp:  started.UTC(),
			Method:     info.FullMethod,
			StatusCode: code.String(),
			SessionID:  sessionIDFromResponse(resp),
			Locale:     requestctx.LocaleFromContext(ctx),
			TraceID:    traceID,
			SpanID:     spanID,
			Duration:   clock().Sub(started),
		}
		if appendErr := store.AppendAuditEvent(context.WithoutCancel(ctx), evt); appendErr != nil {
			log.Printf("audit append %s: %v", info.FullMethod, appendErr)
		}
		return resp, err
	}
}

func sessionIDFromResponse(resp any) string {
	if resp == nil {
		return ""
	}
	if getter, ok := resp.(stateGetter); ok {
		return strings.TrimSpace(getter.GetState().GetSessionID())
	}
	return ""
}
