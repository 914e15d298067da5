package feed

import (
	"context"
	"time"

	"github.com/lysyi3m/pod-comb/app/metrics"
	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/rs/zerolog/log"
)

// Parser exposes the two entry points: parse-only and fetch-then-parse.
// Errors from either are returned as produced, one of the four podcast kinds.
type Parser struct {
	fetcher *Fetcher
}

func NewParser(fetcher *Fetcher) *Parser {
	return &Parser{
		fetcher: fetcher,
	}
}

// FromFeed parses an already downloaded feed document.
func (p *Parser) FromFeed(data []byte, opts *podcast.Options) (*podcast.Result, error) {
	start := time.Now()

	result, err := p.run(data, opts)
	metrics.ObserveParse(metrics.SourceFeed, outcome(err), time.Since(start))
	return result, err
}

// FromURL fetches url and parses the response.
func (p *Parser) FromURL(ctx context.Context, url string, opts *podcast.Options) (*podcast.Result, error) {
	start := time.Now()

	result, err := p.fetchAndRun(ctx, url, opts)
	metrics.ObserveParse(metrics.SourceURL, outcome(err), time.Since(start))
	if err != nil {
		log.Debug().Str("url", url).Str("kind", podcast.KindOf(err)).Err(err).Msg("Podcast parse failed")
	}
	return result, err
}

func (p *Parser) fetchAndRun(ctx context.Context, url string, opts *podcast.Options) (*podcast.Result, error) {
	cfg, err := podcast.BuildConfig(opts)
	if err != nil {
		return nil, err
	}

	data, err := p.fetcher.Run(ctx, url)
	if err != nil {
		return nil, err
	}

	return p.assemble(data, cfg)
}

func (p *Parser) run(data []byte, opts *podcast.Options) (*podcast.Result, error) {
	cfg, err := podcast.BuildConfig(opts)
	if err != nil {
		return nil, err
	}
	return p.assemble(data, cfg)
}

func (p *Parser) assemble(data []byte, cfg *podcast.Config) (*podcast.Result, error) {
	channel, err := Channel(data)
	if err != nil {
		return nil, err
	}

	result, err := podcast.Assemble(channel, cfg)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Interface("title", result.Meta["title"]).
		Int("episodes", len(result.Episodes)).
		Msg("Parsed podcast feed")

	return result, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return podcast.KindOf(err)
}
