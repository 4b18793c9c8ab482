package talenox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	commonhttp "onboarding-intake/internal/common/http"
)

// Client talks to the Talenox REST API with bearer authentication.
type Client struct {
	rest *commonhttp.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return NewClientWith(commonhttp.NewClient(timeout,
		commonhttp.WithBaseURL(baseURL),
		commonhttp.WithBearerToken(apiKey),
	))
}

// NewClientWith wraps an already configured REST client.
func NewClientWith(c *commonhttp.Client) *Client {
	return &Client{rest: c}
}

// ListEmployees returns a page of raw employee records, most recent first when sort is "-created_at".
func (c *Client) ListEmployees(ctx context.Context, per int, sort string) ([]map[string]interface{}, error) {
	query := url.Values{}
	if per > 0 {
		query.Set("per", strconv.Itoa(per))
	}
	if sort != "" {
		query.Set("sort", sort)
	}
	path := "/employees"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.rest.DoJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &APIError{Operation: "list employees", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return decodeEmployeeList(resp.Body)
}

// CreateEmployee posts the record and returns the created id (`id`, else `employee_id`).
func (c *Client) CreateEmployee(ctx context.Context, record EmployeeRecord) (*CreatedEmployee, error) {
	resp, err := c.rest.DoJSON(ctx, http.MethodPost, "/employees", record)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &APIError{Operation: "create employee", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	raw, err := decodeObject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode create employee response: %w", err)
	}

	id := idString(raw["id"])
	if id == "" {
		id = idString(raw["employee_id"])
	}
	if id == "" {
		return nil, fmt.Errorf("create employee response has no id")
	}

	return &CreatedEmployee{ID: id, Raw: raw}, nil
}

// CreateJob posts a job linked to an existing employee.
func (c *Client) CreateJob(ctx context.Context, job JobRecord) (*CreatedJob, error) {
	resp, err := c.rest.DoJSON(ctx, http.MethodPost, "/jobs", job)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &APIError{Operation: "create job", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	raw, err := decodeObject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode create job response: %w", err)
	}

	return &CreatedJob{ID: idString(raw["id"]), Raw: raw}, nil
}

func decodeObject(body []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeEmployeeList accepts a bare array or an object wrapping it under "employees" or "data".
func decodeEmployeeList(body []byte) ([]map[string]interface{}, error) {
	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to decode employee list: %w", err)
	}

	var items []interface{}
	switch v := generic.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		for _, key := range []string{"employees", "data"} {
			if arr, ok := v[key].([]interface{}); ok {
				items = arr
				break
			}
		}
	}

	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]interface{}); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
