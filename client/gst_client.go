package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/utils"
)

const (
	ProviderGST = "gst"

	GSTSuccessMessage       = "GST details fetched successfully"
	gstDefaultFailMessage   = "Failed to fetch GST details"
	gstUnreadableMessageFmt = "Error fetching GST details: %v"
)

// GSTClient looks up taxpayer details by GSTIN. The provider expects the
// API key and the GSTIN as path segments: {base}/{apiKey}/{gstin}.
type GSTClient struct {
	upstream
	baseURL string
	apiKey  string
}

func NewGSTClient(baseURL, apiKey string, opts ...Option) *GSTClient {
	return &GSTClient{
		upstream: newUpstream(opts...),
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
	}
}

// FetchGSTDetails fetches and normalizes the record for an already
// validated GSTIN. Failures are returned as *FetchError.
func (c *GSTClient) FetchGSTDetails(ctx context.Context, gstin string) (details *dto.GSTDetails, err error) {
	start := c.now()
	defer func() { c.record(ProviderGST, gstin, start, err) }()

	endpoint := c.baseURL + "/" + url.PathEscape(c.apiKey) + "/" + url.PathEscape(gstin)

	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, networkError(ProviderGST, err)
	}
	if !isSuccessStatus(status) {
		return nil, networkError(ProviderGST, fmt.Errorf("provider returned status %d", status))
	}
	if !gjson.ValidBytes(body) {
		cause := fmt.Errorf("invalid JSON response")
		return nil, providerError(ProviderGST, fmt.Sprintf(gstUnreadableMessageFmt, cause), cause)
	}

	resp := gjson.ParseBytes(body)
	if resp.Get("flag").Type != gjson.True {
		msg := resp.Get("message").String()
		if msg == "" {
			msg = gstDefaultFailMessage
		}
		return nil, providerError(ProviderGST, msg, nil)
	}

	data := resp.Get("data")
	addr := data.Get("pradr.addr")

	return &dto.GSTDetails{
		CompanyName:      data.Get("tradeNam").String(),
		LegalName:        data.Get("lgnm").String(),
		Address1:         addr.Get("bnm").String(),
		Address2:         addr.Get("st").String(),
		City:             addr.Get("dst").String(),
		Pincode:          addr.Get("pncd").String(),
		District:         addr.Get("dst").String(),
		State:            addr.Get("stcd").String(),
		GSTIN:            gstin,
		PAN:              utils.ExtractPAN(gstin),
		RegistrationDate: data.Get("rgdt").String(),
		BusinessType:     data.Get("ctb").String(),
		Status:           data.Get("sts").String(),
		FetchedAt:        c.timestamp(),
	}, nil
}
