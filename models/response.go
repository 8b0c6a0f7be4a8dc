package models

// Response codes
const (
	CodeSuccess = 0

	// client errors (1000-1999)
	CodeInvalidParams = 1000
	CodeMissingParams = 1001
	CodeNoProfileData = 1002
	CodeNoQuizData    = 1003
	CodeNoRecommendations = 1004

	// server errors (2000-2999)
	CodeServerError       = 2000
	CodeCatalogMissing    = 2001
	CodeCatalogParseError = 2002
	CodeRecommendGenError = 2003
	CodeScrapeError       = 2004
	CodeThirdPartyAPIError = 2005
)

var CodeMessages = map[int]string{
	CodeSuccess:            "success",
	CodeInvalidParams:      "invalid parameters",
	CodeMissingParams:      "missing required parameters",
	CodeNoProfileData:      "no financial profile submitted yet",
	CodeNoQuizData:         "no quiz selections submitted yet",
	CodeNoRecommendations:  "no recommendations available",
	CodeServerError:        "internal server error",
	CodeCatalogMissing:     "vehicle catalog file not found, run a scrape first",
	CodeCatalogParseError:  "vehicle catalog file could not be parsed",
	CodeRecommendGenError:  "recommendation generation failed",
	CodeScrapeError:        "catalog scrape failed",
	CodeThirdPartyAPIError: "third-party API error",
}

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
