package main

// apiResponse is the uniform JSON envelope for every API outcome.
// Data marshals as null when absent.
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func success(message string, data any) apiResponse {
	return apiResponse{Status: "success", Message: message, Data: data}
}

func fail(message string) apiResponse {
	return apiResponse{Status: "fail", Message: message}
}

// serverError marks failures not attributable to client input.
func serverError(message string) apiResponse {
	return apiResponse{Status: "error", Message: message}
}
