package dto

// ExtractSource records where identifiers were recovered from.
type ExtractSource string

const (
	SourceQR      ExtractSource = "qr"
	SourcePDFText ExtractSource = "pdf_text"
	SourceOCR     ExtractSource = "ocr"
)

// ExtractResult lists the identifiers found in an uploaded document and,
// when a lookup was requested, their resolved details.
type ExtractResult struct {
	Sources     []ExtractSource  `json:"sources"`
	GSTINs      []string         `json:"gstins"`
	IFSCs       []string         `json:"ifscs"`
	GSTResults  []GSTBulkResult  `json:"gstResults,omitempty"`
	BankResults []BankBulkResult `json:"bankResults,omitempty"`
}

// Empty reports whether nothing usable was found.
func (r *ExtractResult) Empty() bool {
	return len(r.GSTINs) == 0 && len(r.IFSCs) == 0
}
