package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Aashish23092/gst-bank-api/dto"
)

const (
	ProviderIFSC = "ifsc"

	BankSuccessMessage       = "Bank details fetched successfully"
	bankNotFoundMessage      = "Invalid IFSC code or bank details not found"
	bankUnreadableMessageFmt = "Error fetching bank details: %v"

	// ifscPlaceholder lets the base URL position the code anywhere,
	// e.g. https://example.com/ifsc/{IFSC}/details
	ifscPlaceholder = "{IFSC}"
)

// IFSCClient looks up bank branch details by IFSC code.
type IFSCClient struct {
	upstream
	baseURL string
}

func NewIFSCClient(baseURL string, opts ...Option) *IFSCClient {
	return &IFSCClient{
		upstream: newUpstream(opts...),
		baseURL:  strings.TrimSpace(baseURL),
	}
}

func (c *IFSCClient) endpoint(ifsc string) string {
	code := url.PathEscape(ifsc)
	if strings.Contains(c.baseURL, ifscPlaceholder) {
		return strings.ReplaceAll(c.baseURL, ifscPlaceholder, code)
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + code
}

// FetchBankDetails fetches and normalizes the branch record for an already
// validated IFSC code. Failures are returned as *FetchError.
func (c *IFSCClient) FetchBankDetails(ctx context.Context, ifsc string) (details *dto.BankDetails, err error) {
	start := c.now()
	defer func() { c.record(ProviderIFSC, ifsc, start, err) }()

	status, body, err := c.get(ctx, c.endpoint(ifsc))
	if err != nil {
		return nil, networkError(ProviderIFSC, err)
	}
	// unknown codes are answered with 404
	if status == http.StatusNotFound {
		return nil, notFoundError(ProviderIFSC, bankNotFoundMessage)
	}
	if !isSuccessStatus(status) {
		return nil, networkError(ProviderIFSC, fmt.Errorf("provider returned status %d", status))
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, notFoundError(ProviderIFSC, bankNotFoundMessage)
	}
	if !gjson.ValidBytes(body) {
		cause := fmt.Errorf("invalid JSON response")
		return nil, providerError(ProviderIFSC, fmt.Sprintf(bankUnreadableMessageFmt, cause), cause)
	}

	resp := gjson.ParseBytes(body)
	branch, ok := lookupField(resp, "BRANCH", "branch")
	if !ok {
		return nil, notFoundError(ProviderIFSC, bankNotFoundMessage)
	}

	return &dto.BankDetails{
		BankName:  fieldOrEmpty(resp, "BANK", "bank"),
		Branch:    branch,
		Address:   fieldOrEmpty(resp, "ADDRESS", "address"),
		City:      fieldOrEmpty(resp, "CITY", "city"),
		District:  fieldOrEmpty(resp, "DISTRICT", "district"),
		State:     fieldOrEmpty(resp, "STATE", "state"),
		IFSCCode:  ifsc,
		MICRCode:  fieldOrEmpty(resp, "MICR", "micr"),
		Contact:   fieldOrEmpty(resp, "CONTACT", "contact"),
		FetchedAt: c.timestamp(),
	}, nil
}

// lookupField returns the first of keys present on an object.
func lookupField(obj gjson.Result, keys ...string) (string, bool) {
	if !obj.IsObject() {
		return "", false
	}
	for _, k := range keys {
		if v := obj.Get(k); v.Exists() {
			return v.String(), true
		}
	}
	return "", false
}

func fieldOrEmpty(obj gjson.Result, keys ...string) string {
	v, _ := lookupField(obj, keys...)
	return v
}
