package validation

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
)

// Tag names usable in `binding:"..."` struct tags
const (
	RuleGender        = "gender"
	RuleStudentTag    = "student_tag"
	RuleEventCategory = "event_category"
	RuleTalkCategory  = "talk_category"
	RuleDormStatus    = "dorm_status"
	RuleImageRef      = "image_ref"
)

// Rules maps each custom tag to its check. Every closed vocabulary of the
// console gets one so a typo in a request never reaches the store.
var Rules = map[string]validator.Func{
	RuleGender: func(fl validator.FieldLevel) bool {
		return models.Gender(fl.Field().String()).Valid()
	},
	RuleStudentTag: func(fl validator.FieldLevel) bool {
		return models.Tag(fl.Field().String()).Valid()
	},
	RuleEventCategory: func(fl validator.FieldLevel) bool {
		return models.EventCategory(fl.Field().String()).Valid()
	},
	RuleTalkCategory: func(fl validator.FieldLevel) bool {
		return models.TalkCategory(fl.Field().String()).Valid()
	},
	RuleDormStatus: func(fl validator.FieldLevel) bool {
		return models.DormStatus(fl.Field().String()).Valid()
	},
	RuleImageRef: func(fl validator.FieldLevel) bool {
		return isImageRef(fl.Field().String())
	},
}

// isImageRef accepts an inline image or a link to one. "" clears a pointer field.
func isImageRef(s string) bool {
	if s == "" || filestorage.IsDataURL(s) {
		return true
	}
	u, err := url.ParseRequestURI(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Register installs every custom rule on v
func Register(v *validator.Validate) error {
	for tag, fn := range Rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s rule: %w", tag, err)
		}
	}
	return nil
}

// Vocabulary returns the allowed values behind a custom rule, for error messages
func Vocabulary(tag string) []string {
	switch tag {
	case RuleGender:
		return []string{string(models.GenderMale), string(models.GenderFemale)}
	case RuleStudentTag:
		return toStrings(models.AllTags())
	case RuleEventCategory:
		return toStrings(models.AllEventCategories())
	case RuleTalkCategory:
		return toStrings(models.AllTalkCategories())
	case RuleDormStatus:
		return toStrings(models.AllDormStatuses())
	default:
		return nil
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
