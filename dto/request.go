package dto

// GSTRequest is the body of POST /api/gst and POST /api/validate/gst
type GSTRequest struct {
	GSTIN string `json:"gstin"`
}

// BankRequest is the body of POST /api/bank and POST /api/validate/ifsc
type BankRequest struct {
	IFSC string `json:"ifsc"`
}

// BulkGSTRequest is the body of POST /api/bulk/gst
type BulkGSTRequest struct {
	GSTINList []string `json:"gstin_list"`
}

// BulkBankRequest is the body of POST /api/bulk/bank
type BulkBankRequest struct {
	IFSCList []string `json:"ifsc_list"`
}
