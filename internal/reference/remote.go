package reference

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const defaultRemoteTimeout = 2 * time.Second

type remoteEntry struct {
	Operator string  `json:"operator"`
	PoolRate float64 `json:"pool_rate"`
	VCMHRate float64 `json:"vcmh_rate"`
}

type cached struct {
	entry Entry
	found bool
}

// Remote fetches operator indexes from an external index service and falls
// back to the static table on any failure. Answers, including misses, are
// cached for the life of the process, so repeated lookups of a key agree.
type Remote struct {
	baseURL  string
	timeout  time.Duration
	client   *fasthttp.Client
	fallback *Table
	cache    sync.Map
	log      *logrus.Entry
}

func NewRemote(baseURL string, timeout time.Duration, fallback *Table, log *logrus.Logger) *Remote {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		fallback: fallback,
		log:      log.WithField("cmp", "reference.remote"),
	}
}

func (r *Remote) Lookup(ctx context.Context, operator string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	key := normalize(operator)
	if v, ok := r.cache.Load(key); ok {
		if c := v.(cached); c.found {
			return c.entry, true, nil
		}
		return r.fallback.Lookup(ctx, operator)
	}

	e, found, err := r.fetch(ctx, operator)
	if err != nil {
		r.log.WithError(err).WithField("operator", operator).Warn("remote index lookup failed, using static table")
		return r.fallback.Lookup(ctx, operator)
	}

	// Misses are cached as well; errors are not.
	r.cache.Store(key, cached{entry: e, found: found})
	if !found {
		return r.fallback.Lookup(ctx, operator)
	}
	return e, true, nil
}

func (r *Remote) fetch(ctx context.Context, operator string) (Entry, bool, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return Entry{}, false, context.DeadlineExceeded
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.baseURL + "/operators/" + url.PathEscape(operator))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		return Entry{}, false, fmt.Errorf("request failed: %w", err)
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return Entry{}, false, nil
	default:
		return Entry{}, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var re remoteEntry
	if err := json.Unmarshal(resp.Body(), &re); err != nil {
		return Entry{}, false, fmt.Errorf("decode response: %w", err)
	}
	e := Entry{PoolRate: re.PoolRate, VCMHRate: re.VCMHRate}
	if err := e.validate(operator); err != nil {
		return Entry{}, false, err
	}

	r.log.WithFields(logrus.Fields{"operator": operator, "vcmh": e.VCMHRate}).Debug("remote index fetched")
	return e, true, nil
}
