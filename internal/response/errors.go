package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrCatalogUnavailable ErrCode = "CATALOG_UNAVAILABLE"

	// ─── Comparison ────────────────────────────────────────────────────
	ErrCompareCapacity ErrCode = "COMPARE_CAPACITY"
	ErrCompareTooFew   ErrCode = "COMPARE_TOO_FEW"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Проверка не пройдена. Проверьте введённые данные."
	case ErrInvalidID:
		return "Некорректный идентификатор."
	case ErrInvalidPayload:
		return "Некорректные данные запроса."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Вуз не найден."
	case ErrCatalogUnavailable:
		return "Каталог временно недоступен."

	// ─── Comparison ────────────────────────────────────────────────────
	case ErrCompareCapacity:
		return "Достигнуто максимальное число вузов для сравнения. Уберите один из выбранных."
	case ErrCompareTooFew:
		return "Выберите минимум 2 вуза для сравнения."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Слишком много запросов. Попробуйте позже."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Внутренняя ошибка сервера."
	default:
		return "Произошла непредвиденная ошибка."
	}
}

// NoticeCode maps a notice query parameter back to a known error code.
// Unknown values are rejected so arbitrary text is never echoed to the page.
func NoticeCode(raw string) (ErrCode, bool) {
	switch code := ErrCode(raw); code {
	case ErrCompareCapacity, ErrCompareTooFew, ErrNotFound, ErrCatalogUnavailable, ErrRateLimitExceeded, ErrInternal:
		return code, true
	default:
		return "", false
	}
}
