package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/counselordesk/internal/app/models"
)

type sample struct {
	Gender models.Gender        `validate:"omitempty,gender"`
	Tags   []models.Tag         `validate:"dive,student_tag"`
	Event  models.EventCategory `validate:"omitempty,event_category"`
	Talk   models.TalkCategory  `validate:"omitempty,talk_category"`
	Status models.DormStatus    `validate:"omitempty,dorm_status"`
	Image  string               `validate:"omitempty,image_ref"`
}

func TestRegisteredRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	valid := sample{
		Gender: models.GenderFemale,
		Tags:   []models.Tag{models.TagPartyMember, models.TagClassCadre},
		Event:  models.EventHonor,
		Talk:   models.TalkCareer,
		Status: models.DormViolation,
		Image:  "data:image/png;base64,iVBORw0KGgo=",
	}
	assert.NoError(t, v.Struct(valid))
	assert.NoError(t, v.Struct(sample{}))

	tests := []struct {
		name  string
		input sample
		tag   string
	}{
		{"gender", sample{Gender: "M"}, RuleGender},
		{"tag", sample{Tags: []models.Tag{"VIP"}}, RuleStudentTag},
		{"event", sample{Event: "party"}, RuleEventCategory},
		{"talk", sample{Talk: "chat"}, RuleTalkCategory},
		{"status", sample{Status: "ok"}, RuleDormStatus},
		{"image script", sample{Image: "javascript:alert(1)"}, RuleImageRef},
		{"image text", sample{Image: "data:text/plain;base64,aGk="}, RuleImageRef},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.tag, verrs[0].Tag())
		})
	}
}

func TestImageRefAcceptsLinks(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(sample{Image: "https://picsum.photos/id/102/400/300"}))
	assert.Error(t, v.Struct(sample{Image: "/uploads/a.png"}))
}

func TestVocabulary(t *testing.T) {
	assert.Len(t, Vocabulary(RuleStudentTag), 6)
	assert.Contains(t, Vocabulary(RuleDormStatus), "合格")
	assert.Nil(t, Vocabulary("required"))
}
