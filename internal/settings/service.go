package settings

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sitekit/go-admin/documents"
	"github.com/sitekit/go-admin/internal/logging"
	"github.com/sitekit/go-admin/pkg/interfaces"
)

var ErrStoreRequired = errors.New("settings: document store required")

// Settings is the global site configuration edited from the settings panel.
type Settings struct {
	SiteTitle       string            `json:"site_title"`
	SiteDescription string            `json:"site_description"`
	ContactEmail    string            `json:"contact_email"`
	SocialLinks     map[string]string `json:"social_links"`
}

// Validate rejects a missing title and malformed contact email.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SiteTitle, validation.Required),
		validation.Field(&s.ContactEmail, is.EmailFormat),
	)
}

// Service loads and saves the settings singleton.
type Service interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) error
}

// ServiceOption configures the service.
type ServiceOption func(*service)

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	store  documents.Store
	logger interfaces.Logger
}

// NewService constructs the settings service.
func NewService(store documents.Store, opts ...ServiceOption) Service {
	if store == nil {
		panic(ErrStoreRequired)
	}
	s := &service{store: store, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads settings/global. Missing document yields zero settings.
func (s *service) Load(ctx context.Context) (Settings, error) {
	doc, err := s.store.Get(ctx, documents.SettingsCollection, documents.GlobalKey)
	if err != nil {
		var notFound *documents.NotFoundError
		if errors.As(err, &notFound) {
			return Settings{SocialLinks: map[string]string{}}, nil
		}
		return Settings{}, err
	}
	return decodeSettings(doc.Data), nil
}

// Save validates and overwrites settings/global.
func (s *service) Save(ctx context.Context, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	links := make(map[string]any, len(settings.SocialLinks))
	for name, url := range settings.SocialLinks {
		links[name] = url
	}
	data := map[string]any{
		"site_title":       settings.SiteTitle,
		"site_description": settings.SiteDescription,
		"contact_email":    settings.ContactEmail,
		"social_links":     links,
	}
	if err := s.store.Set(ctx, documents.SettingsCollection, documents.GlobalKey, data, documents.SetOptions{}); err != nil {
		s.logger.Error("settings save failed", "error", err)
		return err
	}
	return nil
}

func decodeSettings(data map[string]any) Settings {
	settings := Settings{
		SiteTitle:       stringValue(data["site_title"]),
		SiteDescription: stringValue(data["site_description"]),
		ContactEmail:    stringValue(data["contact_email"]),
		SocialLinks:     map[string]string{},
	}
	if links, ok := data["social_links"].(map[string]any); ok {
		for name, url := range links {
			settings.SocialLinks[name] = stringValue(url)
		}
	}
	return settings
}

func stringValue(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}
