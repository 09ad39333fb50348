// Package datasource fetches historical championship data from the Jolpica (Ergast mirror) API.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/metrics"
	"github.com/netoph/f1-2026-predictor/internal/models"
)

const (
	sourceName = "jolpica"

	// DefaultBaseURL is the public Jolpica endpoint.
	DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"
	// DefaultPageSize is the largest page the API serves.
	DefaultPageSize = 100
	// maxPages bounds pagination against a misreported total.
	maxPages = 200
	// fetchAllRequests is the number of resources FetchAll loads.
	fetchAllRequests = 5
)

// JolpicaClient reads standings, results and qualifying from the Jolpica API
type JolpicaClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	pageSize   int
	logger     *logrus.Entry
}

// NewJolpicaClient creates a new Jolpica API client
func NewJolpicaClient(httpClient *RateLimitedHTTPClient, baseURL string, pageSize int, log *logrus.Logger) *JolpicaClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = logger.Discard()
	}
	return &JolpicaClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   pageSize,
		logger:     log.WithField("component", "datasource"),
	}
}

// Name returns the name of the data source
func (c *JolpicaClient) Name() string {
	return sourceName
}

// Close releases idle connections held by the client.
func (c *JolpicaClient) Close() error {
	return c.httpClient.Close()
}

// mrData is the envelope every Jolpica response is wrapped in.
type mrData struct {
	MRData struct {
		Limit          string          `json:"limit"`
		Offset         string          `json:"offset"`
		Total          string          `json:"total"`
		RaceTable      *raceTable      `json:"RaceTable,omitempty"`
		StandingsTable *standingsTable `json:"StandingsTable,omitempty"`
	} `json:"MRData"`
}

type raceTable struct {
	Season string `json:"season"`
	Races  []race `json:"Races"`
}

type race struct {
	Season            string        `json:"season"`
	Round             string        `json:"round"`
	RaceName          string        `json:"raceName"`
	Results           []raceResult  `json:"Results"`
	QualifyingResults []qualiResult `json:"QualifyingResults"`
}

type driverRef struct {
	DriverID string `json:"driverId"`
	Code     string `json:"code"`
}

type raceResult struct {
	Position string    `json:"position"`
	Points   string    `json:"points"`
	Status   string    `json:"status"`
	Driver   driverRef `json:"Driver"`
}

type qualiResult struct {
	Position string    `json:"position"`
	Driver   driverRef `json:"Driver"`
}

type standingsTable struct {
	Season         string          `json:"season"`
	StandingsLists []standingsList `json:"StandingsLists"`
}

type standingsList struct {
	Round                string                `json:"round"`
	ConstructorStandings []constructorStanding `json:"ConstructorStandings"`
}

type constructorStanding struct {
	Position    string `json:"position"`
	Points      string `json:"points"`
	Constructor struct {
		ConstructorID string `json:"constructorId"`
		Name          string `json:"name"`
	} `json:"Constructor"`
}

// FetchConstructorStandings retrieves the final constructor standings of a season
func (c *JolpicaClient) FetchConstructorStandings(ctx context.Context, year int) ([]models.HistoricalStanding, error) {
	var standings []models.HistoricalStanding
	err := c.paginate(ctx, "constructor_standings", fmt.Sprintf("/%d/constructorStandings", year), func(page *mrData) error {
		table := page.MRData.StandingsTable
		if table == nil {
			return NewError(sourceName, ErrCodeInvalidData, "response has no StandingsTable", nil)
		}
		for _, list := range table.StandingsLists {
			for _, s := range list.ConstructorStandings {
				standings = append(standings, models.HistoricalStanding{
					Name:   s.Constructor.Name,
					Points: parseFloat(s.Points),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(standings) == 0 {
		return nil, NewError(sourceName, ErrCodeNotFound, fmt.Sprintf("no constructor standings for %d", year), nil)
	}
	return standings, nil
}

// FetchRaceResults retrieves every classified result of a season
func (c *JolpicaClient) FetchRaceResults(ctx context.Context, year int) ([]models.HistoricalResult, error) {
	var results []models.HistoricalResult
	err := c.paginate(ctx, "results", fmt.Sprintf("/%d/results", year), func(page *mrData) error {
		table := page.MRData.RaceTable
		if table == nil {
			return NewError(sourceName, ErrCodeInvalidData, "response has no RaceTable", nil)
		}
		for _, r := range table.Races {
			round, err := strconv.Atoi(r.Round)
			if err != nil {
				return NewError(sourceName, ErrCodeInvalidData, fmt.Sprintf("invalid round %q", r.Round), err)
			}
			for _, res := range r.Results {
				status := res.Status
				if status == "" {
					status = "Finished"
				}
				results = append(results, models.HistoricalResult{
					Round:      round,
					DriverCode: res.Driver.Code,
					Position:   parsePosition(res.Position),
					Points:     parseFloat(res.Points),
					Status:     status,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FetchQualifyingResults retrieves every qualifying classification of a season
func (c *JolpicaClient) FetchQualifyingResults(ctx context.Context, year int) ([]models.QualifyingResult, error) {
	var results []models.QualifyingResult
	err := c.paginate(ctx, "qualifying", fmt.Sprintf("/%d/qualifying", year), func(page *mrData) error {
		table := page.MRData.RaceTable
		if table == nil {
			return NewError(sourceName, ErrCodeInvalidData, "response has no RaceTable", nil)
		}
		for _, r := range table.Races {
			round, err := strconv.Atoi(r.Round)
			if err != nil {
				return NewError(sourceName, ErrCodeInvalidData, fmt.Sprintf("invalid round %q", r.Round), err)
			}
			for _, q := range r.QualifyingResults {
				results = append(results, models.QualifyingResult{
					Round:      round,
					DriverCode: q.Driver.Code,
					Position:   parsePosition(q.Position),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FetchAll loads the history the ratings step needs, running the five requests concurrently.
// It fails only when every request fails.
// Constructor standings come from the previous season.
func (c *JolpicaClient) FetchAll(ctx context.Context, previousSeason, currentSeason int) (*models.SeasonHistory, error) {
	if c == nil {
		return nil, NewError(sourceName, ErrCodeNetworkError, "data source disabled", nil)
	}
	history := &models.SeasonHistory{}

	// A failed resource leaves its field nil; ratings fall back per component.
	var (
		mu       sync.Mutex
		failures []error
	)
	fetch := func(resource string, season int, run func() error) func() error {
		return func() error {
			if err := run(); err != nil {
				c.logger.WithError(err).WithFields(logrus.Fields{
					"resource": resource,
					"season":   season,
				}).Warn("Historical fetch failed, continuing without it")
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			return nil
		}
	}

	var g errgroup.Group
	g.Go(fetch("constructorStandings", previousSeason, func() (err error) {
		history.ConstructorStandings, err = c.FetchConstructorStandings(ctx, previousSeason)
		return err
	}))
	g.Go(fetch("results", previousSeason, func() (err error) {
		history.PreviousResults, err = c.FetchRaceResults(ctx, previousSeason)
		return err
	}))
	g.Go(fetch("results", currentSeason, func() (err error) {
		history.CurrentResults, err = c.FetchRaceResults(ctx, currentSeason)
		return err
	}))
	g.Go(fetch("qualifying", previousSeason, func() (err error) {
		history.PreviousQualifying, err = c.FetchQualifyingResults(ctx, previousSeason)
		return err
	}))
	g.Go(fetch("qualifying", currentSeason, func() (err error) {
		history.CurrentQualifying, err = c.FetchQualifyingResults(ctx, currentSeason)
		return err
	}))
	_ = g.Wait()

	if len(failures) == fetchAllRequests {
		return nil, fmt.Errorf("all %d historical requests failed: %w", fetchAllRequests, failures[0])
	}
	c.logger.WithFields(logrus.Fields{
		"previous_season": previousSeason,
		"current_season":  currentSeason,
		"results":         len(history.PreviousResults) + len(history.CurrentResults),
		"standings":       len(history.ConstructorStandings),
		"failed":          len(failures),
	}).Info("Fetched historical data")
	return history, nil
}

// paginate walks limit/offset pages until MRData.total rows have been read.
func (c *JolpicaClient) paginate(ctx context.Context, resource, path string, handle func(*mrData) error) error {
	offset := 0
	for page := 0; page < maxPages; page++ {
		data, err := c.getPage(ctx, path, offset)
		if err != nil {
			metrics.RecordDataSourceRequest(resource, "failure")
			return err
		}
		metrics.RecordDataSourceRequest(resource, "success")
		if err := handle(data); err != nil {
			return err
		}

		total, _ := strconv.Atoi(data.MRData.Total)
		limit, _ := strconv.Atoi(data.MRData.Limit)
		if limit <= 0 {
			limit = c.pageSize
		}
		offset += limit
		if offset >= total {
			return nil
		}
	}
	c.logger.WithField("path", path).Warn("Pagination stopped at page limit")
	return nil
}

func (c *JolpicaClient) getPage(ctx context.Context, path string, offset int) (*mrData, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	endpoint := fmt.Sprintf("%s%s.json?%s", c.baseURL, path, q.Encode())

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, NewError(sourceName, ErrCodeNetworkError, "failed to fetch "+path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewError(sourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewError(sourceName, ErrCodeNotFound, path+" not found", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewError(sourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var data mrData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, NewError(sourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	return &data, nil
}

// parsePosition returns 0 for a missing or non-numeric position.
func parsePosition(s string) int {
	p, err := strconv.Atoi(s)
	if err != nil || p < 0 {
		return 0
	}
	return p
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
