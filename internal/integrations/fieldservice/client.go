package fieldservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешней field-service платформы
// Платформа владеет календарями специалистов и созданными работами;
// клиент только читает занятость и создает работы
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента field-service платформы
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListTechnicians возвращает специалистов, выполняющих указанный тип работы
func (c *Client) ListTechnicians(ctx context.Context, jobTypeID string) ([]Technician, error) {
	reqURL := fmt.Sprintf("%s/v1/technicians?job_type=%s", c.baseURL, url.QueryEscape(jobTypeID))

	req, err := c.newRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrJobTypeNotFound
	default:
		return nil, c.unexpectedStatus("ListTechnicians", resp)
	}

	var technicians []Technician
	if err := json.NewDecoder(resp.Body).Decode(&technicians); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return technicians, nil
}

// GetBusyIntervals возвращает занятые интервалы календаря специалиста
// за период [from, to)
func (c *Client) GetBusyIntervals(ctx context.Context, technicianID string, from, to time.Time) ([]BusyInterval, error) {
	reqURL := fmt.Sprintf("%s/v1/technicians/%s/busy?from=%s&to=%s",
		c.baseURL,
		url.PathEscape(technicianID),
		url.QueryEscape(from.UTC().Format(time.RFC3339)),
		url.QueryEscape(to.UTC().Format(time.RFC3339)),
	)

	req, err := c.newRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrTechnicianNotFound
	default:
		return nil, c.unexpectedStatus("GetBusyIntervals", resp)
	}

	var intervals []BusyInterval
	if err := json.NewDecoder(resp.Body).Decode(&intervals); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return intervals, nil
}

// CreateJob создает работу (резервирует слот) во внешней системе
// Конфликт расписания (409) возвращается отдельной ошибкой ErrJobConflict:
// это штатная ситуация гонки за слот, а не сбой
func (c *Client) CreateJob(ctx context.Context, jobReq CreateJobRequest) (*Job, error) {
	body, err := json.Marshal(jobReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/v1/jobs", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusConflict:
		return nil, ErrJobConflict
	case http.StatusNotFound:
		return nil, ErrJobTypeNotFound
	default:
		return nil, c.unexpectedStatus("CreateJob", resp)
	}

	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("%w: created job has empty id", ErrInvalidResponse)
	}

	return &job, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return req, nil
}

func (c *Client) unexpectedStatus(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s - status code %d: %s", ErrUnavailable, op, resp.StatusCode, string(body))
	}
	return fmt.Errorf("%w: %s - unexpected status code %d: %s", ErrInvalidResponse, op, resp.StatusCode, string(body))
}
