package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category identifies one of the fixed tenant configuration domains
type Category string

const (
	CategoryEmail         Category = "email"
	CategoryBranding      Category = "branding"
	CategoryNotifications Category = "notifications"
	CategoryGeneral       Category = "general"
	CategoryWhatsApp      Category = "whatsapp"
)

// Categories lists every valid category in enumeration order
var Categories = []Category{
	CategoryEmail,
	CategoryBranding,
	CategoryNotifications,
	CategoryGeneral,
	CategoryWhatsApp,
}

// ParseCategory converts a route parameter into a Category.
// The second return value is false for anything outside the enumeration.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Document is an untyped settings document whose shape depends on its category
type Document map[string]interface{}

// SettingsRecord is the persisted settings document for one (tenant, category) pair
type SettingsRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID  string             `bson:"tenantId" json:"tenantId"`
	Category  Category           `bson:"category" json:"category"`
	Settings  Document           `bson:"settings" json:"settings"`
	UpdatedBy string             `bson:"updatedBy" json:"updatedBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SettingsResult is the effective settings document returned to callers
type SettingsResult struct {
	Category  Category
	Settings  Document
	UpdatedAt time.Time // zero when IsDefault is set
	IsDefault bool
	FromCache bool
}

// CachedSettings is the value held by the settings read cache
type CachedSettings struct {
	Settings  Document
	UpdatedAt time.Time
	Timestamp time.Time // when the entry was cached
}

// Clone returns a deep copy of d. Nested BSON container types are normalized
// to plain maps and slices so callers only ever see JSON-shaped values.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return map[string]interface{}(Document(t).Clone())
	case Document:
		return map[string]interface{}(t.Clone())
	case primitive.M:
		return map[string]interface{}(Document(t).Clone())
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = cloneValue(e.Value)
		}
		return m
	case []interface{}:
		return cloneSlice(t)
	case primitive.A:
		return cloneSlice(t)
	default:
		return v
	}
}

func cloneSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = cloneValue(v)
	}
	return out
}
