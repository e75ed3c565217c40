package dto

// ErrorResponse cuerpo de error HTTP. Code es el tipo de error de dominio
// (NotFound, IdUpdateForbidden...) o un código de transporte (INVALID_BODY, VALIDATION...).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Int64Ptr devuelve un puntero a v; útil para IDs opcionales en requests y tests.
func Int64Ptr(v int64) *int64 { return &v }

// StringPtr devuelve un puntero a v.
func StringPtr(v string) *string { return &v }

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func copyInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
