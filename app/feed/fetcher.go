package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lysyi3m/pod-comb/app/podcast"
)

const acceptHeader = "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

type Fetcher struct {
	client *resty.Client
}

func NewFetcher(userAgent string, timeout time.Duration, retries int) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", acceptHeader).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
		})

	return &Fetcher{client: client}
}

// Run downloads the feed at url. Transport failures and non-200 responses are
// reported as *podcast.FetchingError.
func (f *Fetcher) Run(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &podcast.FetchingError{URL: url, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &podcast.FetchingError{URL: url, StatusCode: resp.StatusCode()}
	}

	return resp.Body(), nil
}
