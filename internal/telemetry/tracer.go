// Package telemetry はOpenTelemetryによるトレースの初期化と計装の部品を提供する。
//
// エクスポーターは標準出力（stdouttrace）を使う。無効な場合はグローバルのプロバイダを
// 変更しないため、計装は no-op になる。
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
)

// ShutdownFunc はトレースをフラッシュして終了する関数。
type ShutdownFunc func(context.Context) error

// InitTracer はトレースを初期化してグローバルのプロバイダに設定する。
// enabled が false の場合は何もせず、何もしない ShutdownFunc を返す。
// w が nil の場合は標準出力に書き出す。
func InitTracer(enabled bool, serviceName string, w io.Writer, logger *slog.Logger) (ShutdownFunc, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []stdouttrace.Option{}
	if w != nil {
		opts = append(opts, stdouttrace.WithWriter(w))
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("エクスポーターの生成に失敗: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("リソースの生成に失敗: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Info("OpenTelemetryを初期化", slog.String("service", serviceName))
	return tp.Shutdown, nil
}

// HTTPHandler はHTTPハンドラをトレース付きでラップする。
func HTTPHandler(next http.Handler, operation string) http.Handler {
	return otelhttp.NewHandler(next, operation)
}

// HTTPTransport はHTTPクライアントのトランスポートをトレース付きでラップする。
func HTTPTransport(base http.RoundTripper) http.RoundTripper {
	return otelhttp.NewTransport(base)
}

// GRPCDialOption はgRPCクライアントの呼び出しをトレースするダイヤルオプションを返す。
func GRPCDialOption() grpc.DialOption {
	return grpc.WithStatsHandler(otelgrpc.NewClientHandler())
}

// GRPCServerOption はgRPCサーバーの呼び出しをトレースするサーバーオプションを返す。
func GRPCServerOption() grpc.ServerOption {
	return grpc.StatsHandler(otelgrpc.NewServerHandler())
}
