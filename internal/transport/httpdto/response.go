package httpdto

// Error codes carried in Response.Code.
const (
	CodeMalformedRequest = "MALFORMED_REQUEST"
	CodeDuplicateName    = "DUPLICATE_NAME"
	CodeTaskNotFound     = "TASK_NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeNotFound         = "NOT_FOUND"
	CodeStorageFailure   = "STORAGE_FAILURE"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnhealthy        = "UNHEALTHY"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(err string, code string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   err,
		Code:    code,
	}
}
