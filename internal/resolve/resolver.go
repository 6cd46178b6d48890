// Package resolve classifies caller input as a direct token address or a
// launchpad page URL and turns either into an address candidate.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/token-risk-api/internal/apperr"
	"github.com/yourorg/token-risk-api/internal/config"
	"github.com/yourorg/token-risk-api/internal/extract"
	"github.com/yourorg/token-risk-api/internal/fetch"
	"github.com/yourorg/token-risk-api/internal/model"
	"github.com/yourorg/token-risk-api/internal/validation"
)

// maxPageBytes caps how much of a launchpad page is read.
const maxPageBytes = 2 << 20

// Source is the resolved origin of an analysis: the address candidate and,
// for scraped pages, a best-effort description.
type Source struct {
	Candidate   model.AddressCandidate
	Description string
	PageURL     string
}

// Resolver owns input classification, launchpad page fetching and address
// extraction.
type Resolver struct {
	acceptURL    bool
	acceptDirect bool
	extractor    extract.Extractor
	launchpad    validation.LaunchpadPolicy
	httpClient   *http.Client
}

// New builds a Resolver from the process configuration.
func New(cfg config.Config) *Resolver {
	extractor := extract.Extractor{}
	if cfg.EnforceSuffix {
		extractor.AllowedSuffixes = cfg.AllowedSuffixes
	}

	return &Resolver{
		acceptURL:    cfg.AcceptURL,
		acceptDirect: cfg.AcceptDirectAddress,
		extractor:    extractor,
		launchpad:    validation.LaunchpadPolicy{Domain: cfg.LaunchpadDomain},
		httpClient:   fetch.NewClient(cfg.RequestTimeout),
	}
}

// Resolve turns raw caller input into a Source or fails with a typed error.
func (r *Resolver) Resolve(ctx context.Context, input string) (*Source, error) {
	if validation.IsWebURL(input) {
		if !r.acceptURL {
			return nil, apperr.Validation("launchpad URLs are not accepted, provide a token address")
		}
		return r.resolvePage(ctx, input)
	}

	if !r.acceptDirect {
		return nil, apperr.Validation("direct addresses are not accepted, provide a launchpad URL")
	}

	candidate := r.extractor.Find(input)
	if candidate == nil {
		return nil, apperr.Validation("input is not a recognized token address")
	}

	return &Source{Candidate: *candidate}, nil
}

// resolvePage validates the URL against the launchpad policy, fetches the
// page and scrapes it for an embedded address and a description.
func (r *Resolver) resolvePage(ctx context.Context, rawURL string) (*Source, error) {
	u, err := r.launchpad.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	body, err := r.fetchPage(ctx, u.String())
	if err != nil {
		return nil, err
	}

	candidate := r.extractor.Find(body)
	if candidate == nil {
		return nil, apperr.NotFound("no token address found on page")
	}

	description := extract.Description(body)
	logrus.WithFields(logrus.Fields{
		"url":     u.String(),
		"address": candidate.Address,
		"chain":   candidate.Chain,
	}).Debug("Resolved launchpad page")

	return &Source{
		Candidate:   *candidate,
		Description: description,
		PageURL:     u.String(),
	}, nil
}

func (r *Resolver) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", apperr.Internal(err, "internal error")
	}
	req.Header.Set("Accept", "text/html")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", apperr.Upstream(err, "failed to fetch launchpad page")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.Upstream(
			fmt.Errorf("unexpected status code: %d", resp.StatusCode),
			"failed to fetch launchpad page")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", apperr.Upstream(err, "failed to read launchpad page")
	}

	return string(body), nil
}
