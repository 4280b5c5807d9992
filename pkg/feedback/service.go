package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/jaffarkeikei/InsightEd/pkg/config"
	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/logging"
)

// Fallback reasons reported when templates replace the service.
const (
	ReasonDisabled = "disabled"
)

// DefaultTimeout bounds one feedback generation.
const DefaultTimeout = 20 * time.Second

// Service wraps a Provider with a deadline and template fallback. Generate
// never fails.
type Service struct {
	provider Provider
	timeout  time.Duration
	enabled  bool
	variant  Variant
	log      *log.Logger
}

// NewService creates a Service. A nil provider always falls back.
func NewService(p Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		provider: p,
		timeout:  timeout,
		enabled:  true,
		variant:  VariantAcademic,
		log:      logging.New("feedback"),
	}
}

// NewServiceFromConfig builds the OpenAI-backed service described by cfg.
// Without an API key the service runs on templates alone.
func NewServiceFromConfig(cfg config.FeedbackConfig) *Service {
	var p Provider
	if cfg.APIKey != "" {
		p = NewOpenAIClient(OpenAIConfig{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
	}
	s := NewService(p, cfg.Timeout)
	s.enabled = cfg.Enabled
	if v, err := ParseVariant(cfg.Variant); err == nil {
		s.variant = v
	}
	return s
}

// Enabled reports whether the service is switched on.
func (s *Service) Enabled() bool { return s.enabled }

// DefaultVariant is used for requests that do not name one.
func (s *Service) DefaultVariant() Variant { return s.variant }

// Generate returns feedback for req. On any provider failure the template
// text is returned with Fallback set and Reason naming the failure.
func (s *Service) Generate(ctx context.Context, req Request) *Feedback {
	if req.Variant == "" {
		req.Variant = s.variant
	}
	if !s.enabled {
		return s.fallback(req, ReasonDisabled)
	}
	if s.provider == nil {
		return s.fallback(req, Reason(rerrors.Feedback(rerrors.ErrFeedbackNoCredentials, "no API key")))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	fb, err := s.provider.Generate(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded && !rerrors.IsCode(err, rerrors.ErrFeedbackTimeout) {
			err = rerrors.FeedbackWrap(err, rerrors.ErrFeedbackTimeout, "feedback service timed out")
		}
		s.log.Warnj(log.JSON{
			"message": "feedback fell back to templates",
			"student": req.StudentID,
			"code":    rerrors.CodeOf(err),
			"error":   err.Error(),
		})
		return s.fallback(req, Reason(err))
	}

	s.log.Debugf("feedback for %s from %s in %s", req.StudentID, s.provider.Name(), time.Since(start).Round(time.Millisecond))
	return fb
}

func (s *Service) fallback(req Request, reason string) *Feedback {
	fb := Template(req)
	fb.Fallback = true
	fb.Reason = reason
	return fb
}

// Reason converts a feedback error into a short metric label, such as
// "timeout" or "no_credentials".
func Reason(err error) string {
	code := rerrors.CodeOf(err)
	if !strings.HasPrefix(code, "FEEDBACK_") {
		return "request_failed"
	}
	return strings.ToLower(strings.TrimPrefix(code, "FEEDBACK_"))
}
