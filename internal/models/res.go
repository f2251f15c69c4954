package models

type ApiResponse struct {
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(message string) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
	}
}

// ValidationResponse carries per-field messages keyed by JSON name.
func ValidationResponse(fields map[string]string) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: "Validation failed",
		Data:    fields,
	}
}
