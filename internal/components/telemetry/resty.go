package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
	report_resty_status   = "resty.status"
)

type instrumentResty struct {
	tel       API
	idcounter *uint64
}

// InstrumentResty reports every request made through the client: a debug
// report on send, a debug report with the duration on response, and a broken
// report when the request could not complete.
func InstrumentResty(client *resty.Client, tel API) {
	var idcounter uint64
	i := instrumentResty{tel: tel, idcounter: &idcounter}

	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id        uint64
	startTime time.Time
}

func (i instrumentResty) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()

	id := atomic.AddUint64(i.idcounter, 1)
	ctx = context.WithValue(ctx, reqCtxKey, reqCtx{
		id:        id,
		startTime: time.Now(),
	})
	i.tel.ReportDebug(report_resty_request, id, req.Method, req.URL)

	req.SetContext(ctx)
	return nil
}

func (i instrumentResty) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	rc, _ := res.Request.Context().Value(reqCtxKey).(reqCtx)

	i.tel.ReportDebug(
		report_resty_response,
		rc.id,
		res.Request.URL,
		res.Time().String(),
		res.Status(),
	)
	if res.StatusCode() >= 400 {
		i.tel.ReportCount(report_resty_status, int64(res.StatusCode()))
	}
	return nil
}

func (i instrumentResty) onError(req *resty.Request, err error) {
	// the context value is missing when an earlier OnBeforeRequest hook
	// (the rate limiter) failed before this one ran.
	rc, ok := req.Context().Value(reqCtxKey).(reqCtx)
	var duration time.Duration
	if ok {
		duration = time.Since(rc.startTime)
	}

	i.tel.ReportBroken(
		report_resty_response,
		err,
		req.Method,
		req.URL,
		duration,
	)
}
