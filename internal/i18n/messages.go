package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys for user-facing strings.
const (
	KeyLoginSucceeded       = "login.succeeded"
	KeyLoginMissingFields   = "login.missing_fields"
	KeyInvalidCredentials   = "login.invalid_credentials"
	KeyLoginStoreFailure    = "login.store_failure"
	KeyLoginTooManyAttempts = "login.too_many_attempts"

	KeyTokenMissing = "auth.token_missing"
	KeyTokenInvalid = "auth.token_invalid"

	KeyCitizenMissingFields  = "citizen.missing_fields"
	KeyCitizenInvalidField   = "citizen.invalid_field"
	KeyCitizenAdded          = "citizen.added"
	KeyCitizenAddFailure     = "citizen.add_failure"
	KeyCitizenNotFound       = "citizen.not_found"
	KeyCitizenSearchFailure  = "citizen.search_failure"
	KeyCitizenDeleted        = "citizen.deleted"
	KeyCitizenDeleteHandled  = "citizen.delete_handled"
	KeyCitizenDeleteNotFound = "citizen.delete_not_found"
	KeyCitizenDeleteFailure  = "citizen.delete_failure"

	KeyInvalidPayload = "request.invalid_payload"
	KeyRateLimited    = "request.rate_limited"
	KeyRouteNotFound  = "request.route_not_found"
	KeyInternalError  = "request.internal_error"
	KeyDependencyDown = "health.dependency_unavailable"
)

var (
	// Vietnamese is the default catalog language.
	Vietnamese = language.Vietnamese
	English    = language.English

	supported = []language.Tag{Vietnamese, English}
	matcher   = language.NewMatcher(supported)
)

func init() {
	vi := Vietnamese
	message.SetString(vi, KeyLoginSucceeded, "Đăng nhập thành công")
	message.SetString(vi, KeyLoginMissingFields, "Thiếu username/password")
	message.SetString(vi, KeyInvalidCredentials, "Sai tài khoản hoặc mật khẩu")
	message.SetString(vi, KeyLoginStoreFailure, "Lỗi server khi đăng nhập")
	message.SetString(vi, KeyLoginTooManyAttempts, "Đăng nhập sai quá nhiều lần, vui lòng thử lại sau")
	message.SetString(vi, KeyTokenMissing, "Thiếu token (Unauthorized)")
	message.SetString(vi, KeyTokenInvalid, "Token không hợp lệ hoặc đã hết hạn (Forbidden)")
	message.SetString(vi, KeyCitizenMissingFields, "Thiếu trường bắt buộc")
	message.SetString(vi, KeyCitizenInvalidField, "Dữ liệu không hợp lệ")
	message.SetString(vi, KeyCitizenAdded, "Thêm công dân thành công")
	message.SetString(vi, KeyCitizenAddFailure, "Lỗi khi thêm công dân")
	message.SetString(vi, KeyCitizenNotFound, "Không tìm thấy công dân")
	message.SetString(vi, KeyCitizenSearchFailure, "Lỗi khi tra cứu công dân")
	message.SetString(vi, KeyCitizenDeleted, "Đã xóa công dân thành công")
	message.SetString(vi, KeyCitizenDeleteHandled, "Đã xử lý xóa (nếu tồn tại)")
	message.SetString(vi, KeyCitizenDeleteNotFound, "Không tìm thấy công dân với CCCD này.")
	message.SetString(vi, KeyCitizenDeleteFailure, "Lỗi server khi xóa công dân")
	message.SetString(vi, KeyInvalidPayload, "Dữ liệu gửi lên không hợp lệ")
	message.SetString(vi, KeyRateLimited, "Quá nhiều yêu cầu, vui lòng thử lại sau")
	message.SetString(vi, KeyRouteNotFound, "Không tìm thấy đường dẫn")
	message.SetString(vi, KeyInternalError, "Lỗi server")
	message.SetString(vi, KeyDependencyDown, "Một hoặc nhiều dịch vụ phụ thuộc không khả dụng")

	en := English
	message.SetString(en, KeyLoginSucceeded, "Login successful")
	message.SetString(en, KeyLoginMissingFields, "Missing username/password")
	message.SetString(en, KeyInvalidCredentials, "Invalid username or password")
	message.SetString(en, KeyLoginStoreFailure, "Server error during login")
	message.SetString(en, KeyLoginTooManyAttempts, "Too many failed login attempts, try again later")
	message.SetString(en, KeyTokenMissing, "Missing token (Unauthorized)")
	message.SetString(en, KeyTokenInvalid, "Invalid or expired token (Forbidden)")
	message.SetString(en, KeyCitizenMissingFields, "Missing required fields")
	message.SetString(en, KeyCitizenInvalidField, "Invalid field value")
	message.SetString(en, KeyCitizenAdded, "Citizen added")
	message.SetString(en, KeyCitizenAddFailure, "Failed to add citizen")
	message.SetString(en, KeyCitizenNotFound, "Citizen not found")
	message.SetString(en, KeyCitizenSearchFailure, "Failed to look up citizen")
	message.SetString(en, KeyCitizenDeleted, "Citizen deleted")
	message.SetString(en, KeyCitizenDeleteHandled, "Delete processed (if it existed)")
	message.SetString(en, KeyCitizenDeleteNotFound, "No citizen with this national ID.")
	message.SetString(en, KeyCitizenDeleteFailure, "Server error while deleting citizen")
	message.SetString(en, KeyInvalidPayload, "Invalid request payload")
	message.SetString(en, KeyRateLimited, "Too many requests, try again later")
	message.SetString(en, KeyRouteNotFound, "Route not found")
	message.SetString(en, KeyInternalError, "Internal server error")
	message.SetString(en, KeyDependencyDown, "One or more dependencies unavailable")
}

// Translator resolves message keys for one language.
type Translator struct {
	printer *message.Printer
	tag     language.Tag
}

// NewTranslator picks the closest supported language for lang, falling back to Vietnamese.
func NewTranslator(lang string) *Translator {
	tag := Vietnamese
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, confidence := matcher.Match(parsed)
		if confidence != language.No {
			tag = supported[idx]
		}
	}
	return &Translator{printer: message.NewPrinter(tag), tag: tag}
}

// T returns the text registered for key, or key itself when unknown.
func (t *Translator) T(key string) string {
	if t == nil {
		return key
	}
	return t.printer.Sprintf(key)
}

// Language reports the resolved language tag.
func (t *Translator) Language() language.Tag {
	return t.tag
}
