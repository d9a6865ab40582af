package services

import (
	"fmt"
	"regexp"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator checks a settings document and returns "" when it is acceptable,
// otherwise the reason for the first rule it violates.
type Validator func(doc models.Document) string

var validators = map[models.Category]Validator{
	models.CategoryEmail:         validateEmailSettings,
	models.CategoryBranding:      validateBrandingSettings,
	models.CategoryNotifications: validateNotificationSettings,
	models.CategoryGeneral:       validateGeneralSettings,
	models.CategoryWhatsApp:      validateWhatsAppSettings,
}

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	fieldValidator  = validator.New()
)

// ValidateSettings runs the registered validator for category.
// Unknown categories fail with ErrInvalidCategory.
func ValidateSettings(category models.Category, doc models.Document) error {
	validate, ok := validators[category]
	if !ok {
		return ErrInvalidCategory
	}
	if reason := validate(doc); reason != "" {
		return &ValidationError{Category: category, Reason: reason}
	}
	return nil
}

func validateEmailSettings(doc models.Document) string {
	if reason := requireFields(doc, "smtpHost", "smtpPort", "fromEmail"); reason != "" {
		return reason
	}
	for _, field := range []string{"fromEmail", "replyToEmail"} {
		if !truthy(doc[field]) {
			continue
		}
		if !isEmail(doc[field]) {
			return fmt.Sprintf("Invalid email format for %s", field)
		}
	}
	return ""
}

func validateBrandingSettings(doc models.Document) string {
	if reason := requireFields(doc, "companyName"); reason != "" {
		return reason
	}
	for _, field := range []string{"primaryColor", "secondaryColor", "accentColor"} {
		if !truthy(doc[field]) {
			continue
		}
		s, ok := doc[field].(string)
		if !ok || !hexColorPattern.MatchString(s) {
			return fmt.Sprintf("Invalid color format for %s: expected a hex color such as #1A2B3C", field)
		}
	}
	return ""
}

func validateNotificationSettings(doc models.Document) string {
	for _, event := range NotificationEvents {
		raw, ok := doc[event]
		if !ok {
			return fmt.Sprintf("Missing notification setting: %s", event)
		}
		channels, ok := raw.(map[string]interface{})
		if !ok {
			return fmt.Sprintf("Invalid notification setting for %s: must be an object", event)
		}
		for _, channel := range NotificationChannels {
			if _, ok := channels[channel].(bool); !ok {
				return fmt.Sprintf("Invalid notification setting for %s: %s must be a boolean", event, channel)
			}
		}
	}
	return ""
}

func validateGeneralSettings(doc models.Document) string {
	return requireFields(doc, "siteName")
}

func validateWhatsAppSettings(doc models.Document) string {
	if enabled, _ := doc["enabled"].(bool); enabled && !truthy(doc["phoneNumber"]) {
		return "phoneNumber is required when WhatsApp is enabled"
	}
	return ""
}

func requireFields(doc models.Document, fields ...string) string {
	for _, field := range fields {
		if !truthy(doc[field]) {
			return fmt.Sprintf("Missing required field: %s", field)
		}
	}
	return ""
}

func isEmail(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return fieldValidator.Var(s, "required,email") == nil
}

// truthy treats absent, nil, false, "" and numeric zero as unset
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
