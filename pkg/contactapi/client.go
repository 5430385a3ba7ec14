package contactapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/imroc/req/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/validation"
)

const (
	// DefaultBaseURL reaches a host-side API from the Android emulator.
	DefaultBaseURL = "http://10.0.2.2:5000/api/"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second
)

// ErrInvalidRequest wraps payload validation failures detected before sending.
var ErrInvalidRequest = errors.New("invalid contact request")

var (
	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Subsystem: "contact_api",
		Name:      "request_duration_seconds",
		Help:      "Duration of contact API requests",
	}, []string{"operation"})

	callFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "contact_api",
		Name:      "request_failures_total",
		Help:      "Number of failed contact API requests",
	}, []string{"operation"})
)

// Config defines the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client talks to the remote contact-intake service.
type Client struct {
	http     *req.Client
	validate *validator.Validate
	tracer   trace.Tracer
	logger   zerolog.Logger
}

// New builds a client. Zero values fall back to DefaultBaseURL and DefaultTimeout.
func New(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := req.C().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetTLSHandshakeTimeout(cfg.Timeout).
		SetCommonHeader("Accept", "application/json")

	return &Client{
		http:     httpClient,
		validate: newValidator(),
		tracer:   otel.Tracer("github.com/serogonpi/desarrollo-mobile-EAII/pkg/contactapi"),
		logger:   cfg.Logger.With().Str("component", "contact_api").Logger(),
	}
}

// newValidator registers contact_email so the client accepts exactly the
// addresses the contact form accepts.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return validation.IsValidEmail(fl.Field().String())
	})
	return validate
}

// ProjectTypes fetches GET tipos-proyecto.
func (c *Client) ProjectTypes(ctx context.Context) ([]Option, error) {
	var options []Option
	err := c.get(ctx, "project_types", "tipos-proyecto", &options)
	return options, err
}

// Budgets fetches GET presupuestos.
func (c *Client) Budgets(ctx context.Context) ([]Option, error) {
	var options []Option
	err := c.get(ctx, "budgets", "presupuestos", &options)
	return options, err
}

// ListContacts fetches GET contactos.
func (c *Client) ListContacts(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	err := c.get(ctx, "list_contacts", "contactos", &contacts)
	return contacts, err
}

// GetContact fetches GET contactos/{id}.
func (c *Client) GetContact(ctx context.Context, id int64) (Contact, error) {
	var contact *Contact
	if err := c.get(ctx, "get_contact", "contactos/"+strconv.FormatInt(id, 10), &contact); err != nil {
		return Contact{}, err
	}
	return *contact, nil
}

// Submit posts a contact request and returns the stored record.
func (c *Client) Submit(parent context.Context, payload ContactRequest) (Contact, error) {
	const operation = "submit"
	ctx, span := c.tracer.Start(parent, "contactapi.submit", trace.WithAttributes(
		attribute.String("project_type", payload.ProjectType),
	))
	defer span.End()

	if err := c.validate.StructCtx(ctx, payload); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		c.fail(span, operation, err)
		return Contact{}, err
	}

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).SetBody(payload).Post("contact")
	callDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		err = fmt.Errorf("contact api %s: %w", operation, err)
		c.fail(span, operation, err)
		return Contact{}, err
	}

	var envelope Envelope[Contact]
	decodeErr := json.Unmarshal(resp.Bytes(), &envelope)

	if !resp.IsSuccessState() {
		apiErr := statusError(resp.StatusCode, envelope.Message)
		c.fail(span, operation, apiErr)
		return Contact{}, apiErr
	}
	if decodeErr != nil {
		err = fmt.Errorf("contact api %s: decode response: %w", operation, decodeErr)
		c.fail(span, operation, err)
		return Contact{}, err
	}
	if !envelope.Success || envelope.Data == nil {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
		if apiErr.Message == "" {
			apiErr.Message = "Error: empty response"
		}
		c.fail(span, operation, apiErr)
		return Contact{}, apiErr
	}

	span.SetAttributes(attribute.Int64("contact_id", envelope.Data.ID))
	c.logger.Debug().Int64("contact_id", envelope.Data.ID).Msg("contact submitted")
	return *envelope.Data, nil
}

func (c *Client) get(parent context.Context, operation, path string, out interface{}) error {
	ctx, span := c.tracer.Start(parent, "contactapi."+operation)
	defer span.End()

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(path)
	callDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		err = fmt.Errorf("contact api %s: %w", operation, err)
		c.fail(span, operation, err)
		return err
	}

	if !resp.IsSuccessState() {
		var envelope Envelope[json.RawMessage]
		_ = json.Unmarshal(resp.Bytes(), &envelope)
		apiErr := statusError(resp.StatusCode, envelope.Message)
		c.fail(span, operation, apiErr)
		return apiErr
	}

	body := resp.Bytes()
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		apiErr := statusError(resp.StatusCode, "")
		c.fail(span, operation, apiErr)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		err = fmt.Errorf("contact api %s: decode response: %w", operation, err)
		c.fail(span, operation, err)
		return err
	}
	return nil
}

func (c *Client) fail(span trace.Span, operation string, err error) {
	callFailures.WithLabelValues(operation).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.Warn().Err(err).Str("operation", operation).Msg("contact api call failed")
}
