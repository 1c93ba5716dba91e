package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kart-io/atlas/pkg/infra/middleware/internal/pathutil"
	"github.com/kart-io/atlas/pkg/infra/tracing"
)

// TracerName is the instrumentation name reported on middleware spans.
const TracerName = "github.com/kart-io/atlas/pkg/infra/middleware"

// TracingOptions configures the tracing middleware.
type TracingOptions struct {
	// TracerName is the name to use for the tracer.
	// Default: TracerName constant
	TracerName string

	// SkipPaths is a list of paths to skip tracing.
	SkipPaths []string

	// SkipPathPrefixes is a list of path prefixes to skip tracing.
	SkipPathPrefixes []string

	// AttributeExtractor extracts custom attributes from the request.
	AttributeExtractor func(c *gin.Context) []attribute.KeyValue
}

// TracingOption is a functional option for TracingOptions.
type TracingOption func(*TracingOptions)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(o *TracingOptions) {
		o.TracerName = name
	}
}

// WithTracingSkipPaths sets paths excluded from tracing.
func WithTracingSkipPaths(paths []string) TracingOption {
	return func(o *TracingOptions) {
		o.SkipPaths = paths
	}
}

// WithTracingSkipPathPrefixes sets path prefixes excluded from tracing.
func WithTracingSkipPathPrefixes(prefixes []string) TracingOption {
	return func(o *TracingOptions) {
		o.SkipPathPrefixes = prefixes
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *gin.Context) []attribute.KeyValue) TracingOption {
	return func(o *TracingOptions) {
		o.AttributeExtractor = extractor
	}
}

// Tracing 返回一个 OpenTelemetry 追踪中间件。
//
// 行为：
//   - 从请求头提取 W3C Trace Context 并续接上游 trace；
//   - 每个请求创建一个 SERVER span，span 名为 "METHOD route"（gin 路由模板，
//     带路径参数的请求不会产生高基数 span 名）；
//   - 记录标准 HTTP 语义属性与 request_id；
//   - 4xx/5xx 响应标记 span 错误状态。
func Tracing(opts ...TracingOption) gin.HandlerFunc {
	options := &TracingOptions{TracerName: TracerName}
	for _, opt := range opts {
		opt(options)
	}

	skip := pathutil.NewPathMatcher(options.SkipPaths, options.SkipPathPrefixes)
	propagator := tracing.GetGlobalTextMapPropagator()

	return func(c *gin.Context) {
		req := c.Request
		path := req.URL.Path

		if skip(path) {
			c.Next()
			return
		}

		// Extract trace context from incoming headers.
		ctx := propagator.Extract(req.Context(), propagation.HeaderCarrier(req.Header))

		spanName := req.Method
		if route := c.FullPath(); route != "" {
			spanName = req.Method + " " + route
		}

		ctx, span := tracing.StartSpanWithKind(ctx, options.TracerName, spanName, trace.SpanKindServer)
		defer span.End()

		c.Request = req.WithContext(ctx)

		attrs := []attribute.KeyValue{
			semconv.HTTPMethod(req.Method),
			semconv.HTTPTarget(path),
			semconv.HTTPScheme(req.URL.Scheme),
			semconv.ServerAddress(req.Host),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, semconv.HTTPRoute(route))
		}
		if userAgent := req.UserAgent(); userAgent != "" {
			attrs = append(attrs, semconv.UserAgentOriginal(userAgent))
		}
		if clientIP := c.ClientIP(); clientIP != "" {
			attrs = append(attrs, attribute.String(tracing.HTTPClientIP, clientIP))
		}
		if requestID := GetRequestID(c); requestID != "" {
			attrs = append(attrs, attribute.String(tracing.HTTPRequestID, requestID))
		}
		if options.AttributeExtractor != nil {
			attrs = append(attrs, options.AttributeExtractor(c)...)
		}
		span.SetAttributes(attrs...)

		c.Next()

		statusCode := c.Writer.Status()
		span.SetAttributes(semconv.HTTPStatusCode(statusCode))

		if statusCode >= 400 {
			span.SetStatus(codes.Error, http.StatusText(statusCode))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		if statusCode >= 500 {
			span.RecordError(fmt.Errorf("HTTP %d: %s", statusCode, http.StatusText(statusCode)))
		}
	}
}
