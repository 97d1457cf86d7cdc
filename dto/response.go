package dto

// Envelope is the uniform shape returned by every lookup endpoint.
// Data is always serialized, as null when there is nothing to return.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// GSTValidationResponse is returned by POST /api/validate/gst
type GSTValidationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	GSTIN   string `json:"gstin"`
	Valid   bool   `json:"valid"`
}

// IFSCValidationResponse is returned by POST /api/validate/ifsc
type IFSCValidationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IFSC    string `json:"ifsc"`
	Valid   bool   `json:"valid"`
}

// GSTBulkResult is one entry of a bulk GST lookup.
type GSTBulkResult struct {
	GSTIN   string      `json:"gstin"`
	Valid   bool        `json:"valid"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *GSTDetails `json:"data"`
}

// BankBulkResult is one entry of a bulk IFSC lookup.
type BankBulkResult struct {
	IFSC    string       `json:"ifsc"`
	Valid   bool         `json:"valid"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *BankDetails `json:"data"`
}

// BulkResponse wraps per-item results. Success is true at the batch level
// even when individual items failed.
type BulkResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Results interface{} `json:"results"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// ServiceInfo is returned by GET /
type ServiceInfo struct {
	Message   string                   `json:"message"`
	Version   string                   `json:"version"`
	Endpoints map[string]string        `json:"endpoints"`
	Usage     map[string]EndpointUsage `json:"usage"`
}

type EndpointUsage struct {
	Method string            `json:"method"`
	URL    string            `json:"url"`
	Body   map[string]string `json:"body"`
}
