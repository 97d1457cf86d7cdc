package dto

// GSTDetails is the normalized taxpayer record built from the GST provider
// response. Missing provider fields are left empty.
type GSTDetails struct {
	CompanyName      string `json:"companyName"`
	LegalName        string `json:"legalName"`
	Address1         string `json:"address1"`
	Address2         string `json:"address2"`
	City             string `json:"city"`
	Pincode          string `json:"pincode"`
	District         string `json:"district"`
	State            string `json:"state"`
	GSTIN            string `json:"gstin"`
	PAN              string `json:"pan"`
	RegistrationDate string `json:"registrationDate"`
	BusinessType     string `json:"businessType"`
	Status           string `json:"status"`
	FetchedAt        string `json:"fetchedAt"`
}

// BankDetails is the normalized branch record built from the IFSC provider
// response.
type BankDetails struct {
	BankName  string `json:"bankName"`
	Branch    string `json:"branch"`
	Address   string `json:"address"`
	City      string `json:"city"`
	District  string `json:"district"`
	State     string `json:"state"`
	IFSCCode  string `json:"ifscCode"`
	MICRCode  string `json:"micrCode"`
	Contact   string `json:"contact"`
	FetchedAt string `json:"fetchedAt"`
}
