package restyutil

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentOutput receives a rendering of every HTTP exchange.
type InstrumentOutput interface {
	Write(id string, contents string)
}

type instrumentCtx struct {
	output    InstrumentOutput
	tracer    trace.Tracer
	idcounter *uint64
}

// InstrumentClient opens a span around every attempt the client makes and,
// when output is not nil, hands it each request with its response.
// `tracer` can be nil, it will default to a library name of "resty".
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	var idcounter uint64
	i := instrumentCtx{output: output, tracer: tracer, idcounter: &idcounter}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type attemptKeyType int

var attemptKey attemptKeyType

type attempt struct {
	id   string
	span trace.Span
}

func (i instrumentCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, span := i.tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))
	id := strconv.FormatUint(atomic.AddUint64(i.idcounter, 1), 10)
	ctx = context.WithValue(ctx, attemptKey, attempt{id: id, span: span})
	req.SetContext(ctx)
	return nil
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	a, ok := res.Request.Context().Value(attemptKey).(attempt)
	if !ok {
		return nil
	}
	defer a.span.End()

	if res.RawResponse != nil {
		a.span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)
	}
	// RawRequest is nil in OnBeforeRequest
	if res.Request.RawRequest != nil {
		a.span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	}
	if res.IsError() {
		a.span.SetStatus(codes.Error, res.Status())
	}

	if i.output != nil {
		i.output.Write(a.id, formatHttpMessage(res))
	}
	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	// missing when an earlier OnBeforeRequest hook failed, the span in the
	// context then belongs to the caller
	a, ok := req.Context().Value(attemptKey).(attempt)
	if !ok {
		return
	}
	defer a.span.End()

	a.span.RecordError(err)
	a.span.SetStatus(codes.Error, "request failed")
	if req.RawRequest != nil {
		a.span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}
	if i.output != nil {
		i.output.Write(a.id, fmt.Sprintf("---- REQUEST ----\n\n%s %s\n\n---- ERROR ----\n\n%s", req.Method, req.URL, err))
	}
}
