package nutricore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vidanutri/nutriview/internal/telemetry/metrics"
	"github.com/vidanutri/nutriview/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneMinute          = 60
	coreAPICacheExpire = oneMinute * 5 // seconds; dashboard data gets stale quickly
)

// Client talks to the remote nutrition core API. Responses are cached in a
// local freecache instance, so a dashboard view firing several concurrent
// fetches for the same subject does not hammer the upstream.
type Client struct {
	baseURL        string
	cache          *freecache.Cache
	httpClient     *http.Client
	metricsManager *metrics.Manager
}

func NewClient(
	baseURL string,
	cacheSizeMB int,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) *Client {
	megabyte := 1024 * 1024
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		cache:          freecache.NewCache(cacheSizeMB * megabyte),
		httpClient:     httpClient,
		metricsManager: metricsManager,
	}
}

func (c *Client) GetProfile(ctx context.Context, subjectID int) (profile Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutricore.getProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	respBytes, err := c.get(ctx, "profile", fmt.Sprintf("/usuario-informacion/%d", subjectID))
	if err != nil {
		return Profile{}, err
	}

	if err := json.Unmarshal(respBytes, &profile); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile response: %w", err)
	}

	return profile, nil
}

func (c *Client) GetIntakeGoals(ctx context.Context, subjectID int) (goals IntakeGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutricore.getIntakeGoals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	respBytes, err := c.get(ctx, "goals", fmt.Sprintf("/usuario-ingesta/%d", subjectID))
	if err != nil {
		return IntakeGoals{}, err
	}

	if err := json.Unmarshal(respBytes, &goals); err != nil {
		return IntakeGoals{}, fmt.Errorf("unmarshal intake goals response: %w", err)
	}

	return goals, nil
}

func (c *Client) GetObjectiveAssignments(ctx context.Context, subjectID int) (assignments []ObjectiveAssignment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutricore.getObjectiveAssignments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	respBytes, err := c.get(ctx, "objective-assignments", fmt.Sprintf("/usuario-objetivo/usuario/%d", subjectID))
	if err != nil {
		return nil, err
	}

	if err := unmarshalList(respBytes, &assignments); err != nil {
		return nil, fmt.Errorf("unmarshal objective assignments response: %w", err)
	}

	return assignments, nil
}

func (c *Client) GetObjective(ctx context.Context, objectiveID int) (objective Objective, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutricore.getObjective")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	respBytes, err := c.get(ctx, "objective", fmt.Sprintf("/objetivo/%d", objectiveID))
	if err != nil {
		return Objective{}, err
	}

	if err := json.Unmarshal(respBytes, &objective); err != nil {
		return Objective{}, fmt.Errorf("unmarshal objective response: %w", err)
	}

	return objective, nil
}

func (c *Client) GetAppointments(ctx context.Context, practitionerID int) (appointments []Appointment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutricore.getAppointments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	respBytes, err := c.get(ctx, "appointments", fmt.Sprintf("/cita/nutricionista/%d", practitionerID))
	if err != nil {
		return nil, err
	}

	if err := unmarshalList(respBytes, &appointments); err != nil {
		return nil, fmt.Errorf("unmarshal appointments response: %w", err)
	}

	return appointments, nil
}

func (c *Client) GetSubjectAppointments(ctx context.Context, practitionerID, subjectID int) (appointments []Appointment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutricore.getSubjectAppointments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	respBytes, err := c.get(
		ctx, "subject-appointments",
		fmt.Sprintf("/cita/nutricionista/%d/usuario/%d", practitionerID, subjectID),
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalList(respBytes, &appointments); err != nil {
		return nil, fmt.Errorf("unmarshal subject appointments response: %w", err)
	}

	return appointments, nil
}

// get returns the raw response body for a core API path, served from the
// local cache when possible.
func (c *Client) get(ctx context.Context, resource, path string) ([]byte, error) {
	cacheKey := []byte(path)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		log.Tracef("core api: cache hit for %s", path)
		if c.metricsManager != nil {
			c.metricsManager.CounterCoreAPICacheHits.Inc()
		}
		return cached, nil
	}

	reqURL := c.baseURL + path
	log.Debugf("core api: calling %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countFetch(resource, "error")
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countFetch(resource, "error")
		return nil, fmt.Errorf("read core api response bytes: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.countFetch(resource, "error")
		return nil, fmt.Errorf("core api responded with status %d for %s", resp.StatusCode, path)
	}

	c.countFetch(resource, "ok")

	if err := c.cache.Set(cacheKey, respBytes, coreAPICacheExpire); err != nil {
		log.Errorf("core api: failed to cache response for %s: %s", path, err)
	}

	return respBytes, nil
}

func (c *Client) countFetch(resource, outcome string) {
	if c.metricsManager != nil {
		c.metricsManager.CounterCoreAPIFetches.WithLabelValues(resource, outcome).Inc()
	}
}

// unmarshalList tolerates the two list shapes the core API is known to
// produce: a bare JSON array, or an object wrapping the array under one of a
// few conventional keys. Anything else decodes to an empty list.
func unmarshalList(body []byte, dst interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, dst)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}

	for _, key := range []string{"content", "items", "data", "results", "rows", "list"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		rawTrimmed := bytes.TrimSpace(raw)
		if len(rawTrimmed) > 0 && rawTrimmed[0] == '[' {
			return json.Unmarshal(rawTrimmed, dst)
		}
	}

	return nil
}
