package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	logService "itqan_backend/internals/features/system/activity_logs/service"
	"itqan_backend/internals/features/system/email_templates/model"
	"itqan_backend/internals/helpers/mailer"
)

// EmailActionPrefix prefix action activity_logs untuk email template yang terkirim
const EmailActionPrefix = "email_"

const layoutOpen = `<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; color: #333;">`

// Render mengganti {{var}} di subject & body. Body dipecah per baris jadi <p>.
// Nilai variabel di-escape untuk HTML, subject tidak.
func Render(t model.EmailTemplateModel, vars map[string]string) (subject, htmlBody string) {
	subject, body := t.SubjectAr, t.BodyAr
	for k, v := range vars {
		ph := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, ph, v)
		body = strings.ReplaceAll(body, ph, html.EscapeString(v))
	}

	var b strings.Builder
	b.WriteString(layoutOpen)
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("<p>" + line + "</p>")
	}
	b.WriteString("</div>")
	return subject, b.String()
}

// SendTemplate: template tidak ada / nonaktif -> tidak mengirim apa-apa.
// Mengembalikan true kalau email di-dispatch.
func SendTemplate(ctx context.Context, db *gorm.DB, key, to string, vars map[string]string) bool {
	if db == nil || strings.TrimSpace(to) == "" {
		return false
	}
	var t model.EmailTemplateModel
	if err := db.WithContext(ctx).Where("template_key = ?", key).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("template email tidak ditemukan", zap.String("key", key))
		} else {
			zap.L().Warn("gagal membaca template email", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if !t.IsActive {
		zap.L().Info("template email nonaktif, dilewati", zap.String("key", key))
		return false
	}
	subject, body := Render(t, vars)
	mailer.Dispatch(mailer.Message{To: to, Subject: subject, HTML: body})
	logService.Log(ctx, db, logService.Entry{
		Action:      EmailActionPrefix + key,
		EntityType:  "email",
		Description: "إرسال بريد: " + to,
	})
	return true
}

/* ===================== email statis (tanpa template DB) ===================== */

func SendVerificationEmail(to, name, code string) {
	body := fmt.Sprintf(`<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 10px;">
<h2 style="color: #0B3D2E;">أهلاً بك يا %s في منصة إتقان الفاتحة</h2>
<p style="font-size: 16px; color: #475569;">شكراً لتسجيلك معنا. لتفعيل حسابك، يرجى استخدام الكود التالي:</p>
<div style="background-color: #f8fafc; padding: 15px; text-align: center; border-radius: 8px; margin: 20px 0;">
<span style="font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #D4A843;">%s</span>
</div>
<p style="font-size: 14px; color: #64748b;">هذا الكود صالح لمدة 24 ساعة فقط.</p>
<p style="font-size: 12px; color: #94a3b8; text-align: center;">إذا لم تقم بإنشاء هذا الحساب، يرجى تجاهل هذه الرسالة.</p>
</div>`, html.EscapeString(name), code)

	mailer.Dispatch(mailer.Message{To: to, Subject: "كود تفعيل حسابك - إتقان الفاتحة", HTML: body})
}

func SendWelcomeEmail(to, name string) {
	body := fmt.Sprintf(`%s<h2 style="color: #0B3D2E;">مرحباً %s 🌿</h2>
<p>تم تفعيل حسابك بنجاح في منصة إتقان الفاتحة.</p>
<p>يمكنك الآن تسجيل تلاوتك لسورة الفاتحة وإرسالها للمراجعة.</p>
</div>`, layoutOpen, html.EscapeString(name))

	mailer.Dispatch(mailer.Message{To: to, Subject: "مرحباً بك في إتقان الفاتحة", HTML: body})
}

func SendResetCodeEmail(to, name, code string) {
	body := fmt.Sprintf(`%s<h2 style="color: #0B3D2E;">إعادة تعيين كلمة المرور</h2>
<p>مرحباً %s، استخدم الكود التالي لإعادة تعيين كلمة المرور:</p>
<p style="font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #D4A843; text-align: center;">%s</p>
<p style="font-size: 14px; color: #64748b;">هذا الكود صالح لمدة ساعة واحدة.</p>
</div>`, layoutOpen, html.EscapeString(name), code)

	mailer.Dispatch(mailer.Message{To: to, Subject: "إعادة تعيين كلمة المرور - إتقان الفاتحة", HTML: body})
}
