// Package ioclimate fetches climate samples for occurrence coordinates.
// Samples come from a historical weather archive compatible with the
// Open-Meteo API. When the archive cannot answer, a latitude-based
// estimate is used instead.
package ioclimate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gnames/gnagro/pkg/climate"
	"github.com/gnames/gnagro/pkg/config"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// archiveResponse is the part of an archive response used for samples.
// Values of a series can be null.
type archiveResponse struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation *float64 `json:"elevation"`
	Monthly   struct {
		Time          []string   `json:"time"`
		Temperature   []*float64 `json:"temperature_2m_mean"`
		Precipitation []*float64 `json:"precipitation_sum"`
	} `json:"monthly"`
}

// Archive is a client of the historical weather archive.
type Archive struct {
	cfg     config.ClimateConfig
	client  *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
}

// NewArchive creates an archive client. Successful samples are cached per
// coordinate rounded to 4 decimals.
func NewArchive(cfg config.ClimateConfig) *Archive {
	ttl := cfg.CacheTTL()
	rps := max(cfg.RateLimit, 1)
	return &Archive{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout()},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		cache:   cache.New(ttl, 2*ttl),
	}
}

// Fetch returns the climate sample of a coordinate: mean of monthly mean
// temperatures, sum of monthly precipitation and elevation of the
// archive grid cell.
func (a *Archive) Fetch(
	ctx context.Context,
	lat, lon float64,
) (climate.Sample, error) {
	var res climate.Sample
	key := cacheKey(lat, lon)
	if smp, ok := a.cache.Get(key); ok {
		return smp.(climate.Sample), nil
	}

	// the timeout covers waiting for the rate limiter too
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout())
	defer cancel()

	if err := a.limiter.Wait(ctx); err != nil {
		return res, RequestError(lat, lon, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.requestURL(lat, lon), nil)
	if err != nil {
		return res, RequestError(lat, lon, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return res, RequestError(lat, lon, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return res, StatusError(lat, lon, resp.StatusCode)
	}

	var ar archiveResponse
	if err = json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return res, DecodeError(lat, lon, err)
	}

	res, err = sampleFromResponse(ar)
	if err != nil {
		return res, EmptySeriesError(lat, lon, err)
	}

	slog.Debug("Archive sample",
		"lat", lat, "lon", lon, "duration", time.Since(start))
	a.cache.SetDefault(key, res)
	return res, nil
}

func (a *Archive) requestURL(lat, lon float64) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("start_date", a.cfg.StartDate)
	q.Set("end_date", a.cfg.EndDate)
	q.Set("monthly", "temperature_2m_mean,precipitation_sum")
	q.Set("elevation", "true")
	return a.cfg.ArchiveURL + "?" + q.Encode()
}

func sampleFromResponse(ar archiveResponse) (climate.Sample, error) {
	var res climate.Sample
	temps := values(ar.Monthly.Temperature)
	precs := values(ar.Monthly.Precipitation)
	if len(temps) == 0 || len(precs) == 0 {
		return res, fmt.Errorf("temperature: %d, precipitation: %d values",
			len(temps), len(precs))
	}

	var tempSum, precSum float64
	for _, v := range temps {
		tempSum += v
	}
	for _, v := range precs {
		precSum += v
	}

	res.Temperature = tempSum / float64(len(temps))
	res.Rainfall = precSum
	if ar.Elevation != nil {
		res.Altitude = *ar.Elevation
	}
	return res, nil
}

// values drops nulls from a series.
func values(series []*float64) []float64 {
	res := make([]float64, 0, len(series))
	for _, v := range series {
		if v != nil {
			res = append(res, *v)
		}
	}
	return res
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}
