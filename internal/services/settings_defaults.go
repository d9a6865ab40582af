package services

import "github.com/egysaas25-hub/fit-coach-sub001/internal/models"

// NotificationEvents are the event keys every notifications document must
// carry, in the order they are validated.
var NotificationEvents = []string{
	"newClientRegistration",
	"clientCheckIn",
	"workoutCompleted",
	"workoutMissed",
	"mealPlanUpdated",
	"progressPhotoUploaded",
	"messageReceived",
	"appointmentReminder",
	"subscriptionCreated",
	"subscriptionRenewed",
	"subscriptionExpiring",
	"subscriptionCancelled",
	"paymentReceived",
	"paymentFailed",
	"weeklyReport",
}

// NotificationChannels are the delivery flags each notification event carries
var NotificationChannels = []string{"email", "whatsapp", "push"}

type channelFlags struct{ email, whatsapp, push bool }

// Baseline delivery channels per event when a tenant has not configured any
var notificationBaseline = map[string]channelFlags{
	"newClientRegistration": {email: true, whatsapp: false, push: true},
	"clientCheckIn":         {email: false, whatsapp: false, push: true},
	"workoutCompleted":      {email: false, whatsapp: false, push: true},
	"workoutMissed":         {email: false, whatsapp: true, push: true},
	"mealPlanUpdated":       {email: true, whatsapp: false, push: true},
	"progressPhotoUploaded": {email: false, whatsapp: false, push: true},
	"messageReceived":       {email: false, whatsapp: false, push: true},
	"appointmentReminder":   {email: true, whatsapp: true, push: true},
	"subscriptionCreated":   {email: true, whatsapp: false, push: false},
	"subscriptionRenewed":   {email: true, whatsapp: false, push: false},
	"subscriptionExpiring":  {email: true, whatsapp: true, push: true},
	"subscriptionCancelled": {email: true, whatsapp: false, push: false},
	"paymentReceived":       {email: true, whatsapp: false, push: false},
	"paymentFailed":         {email: true, whatsapp: true, push: true},
	"weeklyReport":          {email: true, whatsapp: false, push: false},
}

var defaultDocuments = map[models.Category]func() models.Document{
	models.CategoryEmail: func() models.Document {
		return models.Document{
			"smtpHost":     "",
			"smtpPort":     587,
			"smtpUser":     "",
			"smtpPassword": "",
			"smtpSecure":   false,
			"fromEmail":    "",
			"fromName":     "FitCoach",
			"replyToEmail": "",
		}
	},
	models.CategoryBranding: func() models.Document {
		return models.Document{
			"companyName":    "FitCoach",
			"logoUrl":        "",
			"faviconUrl":     "",
			"primaryColor":   "#3B82F6",
			"secondaryColor": "#10B981",
			"accentColor":    "#F59E0B",
		}
	},
	models.CategoryNotifications: func() models.Document {
		doc := make(models.Document, len(NotificationEvents))
		for _, event := range NotificationEvents {
			flags := notificationBaseline[event]
			doc[event] = map[string]interface{}{
				"email":    flags.email,
				"whatsapp": flags.whatsapp,
				"push":     flags.push,
			}
		}
		return doc
	},
	models.CategoryGeneral: func() models.Document {
		return models.Document{
			"siteName":   "FitCoach",
			"timezone":   "Africa/Cairo",
			"language":   "en",
			"dateFormat": "MM/DD/YYYY",
			"timeFormat": "12h",
		}
	},
	models.CategoryWhatsApp: func() models.Document {
		return models.Document{
			"enabled":            false,
			"phoneNumber":        "",
			"businessAccountId":  "",
			"accessToken":        "",
			"webhookVerifyToken": "",
		}
	},
}

// DefaultSettings returns a fresh copy of the built-in document for category.
// It returns nil for an unknown category.
func DefaultSettings(category models.Category) models.Document {
	build, ok := defaultDocuments[category]
	if !ok {
		return nil
	}
	return build()
}
