package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"itqan_backend/internals/features/system/email_templates/model"
)

func TestRender(t *testing.T) {
	tpl := model.EmailTemplateModel{
		SubjectAr: "مرحباً {{name}}",
		BodyAr:    "السلام عليكم {{name}}\nرابط: {{link}}",
	}
	subject, body := Render(tpl, map[string]string{"name": "<Ali>", "link": "https://x.test/c/1"})

	assert.Equal(t, "مرحباً <Ali>", subject)
	assert.Contains(t, body, "<p>السلام عليكم &lt;Ali&gt;</p>")
	assert.Contains(t, body, "<p>رابط: https://x.test/c/1</p>")
	assert.Contains(t, body, `dir="rtl"`)
}

func TestRenderKeepsUnknownPlaceholders(t *testing.T) {
	_, body := Render(model.EmailTemplateModel{SubjectAr: "s", BodyAr: "{{missing}}"}, nil)
	assert.Contains(t, body, "{{missing}}")
}
