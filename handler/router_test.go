package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aashish23092/gst-bank-api/client"
	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/handler"
	"github.com/Aashish23092/gst-bank-api/metrics"
	"github.com/Aashish23092/gst-bank-api/service"
	"github.com/Aashish23092/gst-bank-api/service/mocks"
)

const validGSTIN = "24DXCPP7145D1ZE"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type routerOptions struct {
	metrics     *metrics.Metrics
	maxFileSize int64
}

func newRouter(t *testing.T, gst service.GSTFetcher, bank service.BankFetcher, opts routerOptions) *gin.Engine {
	t.Helper()

	if opts.maxFileSize == 0 {
		opts.maxFileSize = 10 << 20
	}

	lookup := service.NewLookupService(gst, bank)
	documents := service.NewDocumentService(service.NewPDFProcessor(), nil, lookup, nil)

	return handler.NewRouter(handler.Handlers{
		Info:     handler.NewInfoHandler("1.2.3"),
		Validate: handler.NewValidateHandler(),
		GST:      handler.NewGSTHandler(lookup, nil),
		Bank:     handler.NewBankHandler(lookup, nil),
		Document: handler.NewDocumentHandler(documents, opts.maxFileSize, nil),
	}, opts.metrics, nil, opts.maxFileSize)
}

func newMockRouter(t *testing.T) (*gin.Engine, *mocks.MockGSTFetcher, *mocks.MockBankFetcher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gst := mocks.NewMockGSTFetcher(ctrl)
	bank := mocks.NewMockBankFetcher(ctrl)
	return newRouter(t, gst, bank, routerOptions{}), gst, bank
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestRouter_NotFound(t *testing.T) {
	router, _, _ := newMockRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodPost, "/api/unknown"},
		{http.MethodGet, "/api/gst"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doJSON(t, router, tc.method, tc.path, "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, "Endpoint not found", env.Message)
		})
	}
}

func TestRouter_HomeAndHealth(t *testing.T) {
	router, _, _ := newMockRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info dto.ServiceInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Contains(t, info.Endpoints, "POST /api/bulk/gst")
	assert.Equal(t, "/api/gst", info.Usage["gst"].URL)

	rec = doJSON(t, router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, handler.ServiceName, health.Service)
	assert.NotEmpty(t, health.Timestamp)
}

func TestRouter_ValidateGST(t *testing.T) {
	router, _, _ := newMockRouter(t)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantValid   bool
		wantMessage string
		wantGSTIN   string
	}{
		{
			name:        "valid after normalization",
			body:        `{"gstin":"  24dxcpp7145d1ze "}`,
			wantStatus:  http.StatusOK,
			wantValid:   true,
			wantMessage: "Valid GSTIN",
			wantGSTIN:   validGSTIN,
		},
		{
			name:        "wrong length is still 200",
			body:        `{"gstin":"24DXCPP7145D1Z"}`,
			wantStatus:  http.StatusOK,
			wantMessage: "GSTIN must be 15 characters long",
			wantGSTIN:   "24DXCPP7145D1Z",
		},
		{
			name:        "bad format",
			body:        `{"gstin":"24DXCPP7145D1AE"}`,
			wantStatus:  http.StatusOK,
			wantMessage: "Invalid GSTIN format",
			wantGSTIN:   "24DXCPP7145D1AE",
		},
		{
			name:        "missing field",
			body:        `{}`,
			wantStatus:  http.StatusOK,
			wantMessage: "GSTIN must be 15 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/validate/gst", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp dto.GSTValidationResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.Equal(t, tt.wantValid, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantGSTIN, resp.GSTIN)
		})
	}
}

func TestRouter_ValidateIFSC(t *testing.T) {
	router, _, _ := newMockRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/validate/ifsc", `{"ifsc":"sbin0001234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.IFSCValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "SBIN0001234", resp.IFSC)
	assert.Equal(t, "Valid IFSC code", resp.Message)

	rec = doJSON(t, router, http.MethodPost, "/api/validate/ifsc", `{"ifsc":"SBIN1001234"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "Invalid IFSC code format", resp.Message)
}

func TestRouter_ValidateUnparseableBody(t *testing.T) {
	router, _, _ := newMockRouter(t)

	for _, path := range []string{"/api/validate/gst", "/api/validate/ifsc"} {
		rec := doJSON(t, router, http.MethodPost, path, `{"gstin":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.True(t, strings.HasPrefix(env.Message, "Validation error: "), env.Message)
	}
}

func TestRouter_FetchGST(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(gst *mocks.MockGSTFetcher)
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{
			name: "success",
			body: `{"gstin":"24dxcpp7145d1ze"}`,
			setup: func(gst *mocks.MockGSTFetcher) {
				gst.EXPECT().FetchGSTDetails(gomock.Any(), validGSTIN).
					Return(&dto.GSTDetails{GSTIN: validGSTIN, CompanyName: "ACME TRADERS"}, nil)
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "GST details fetched successfully",
		},
		{
			name:        "invalid gstin never reaches the provider",
			body:        `{"gstin":"ABC"}`,
			setup:       func(*mocks.MockGSTFetcher) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "GSTIN must be 15 characters long",
		},
		{
			name: "provider failure",
			body: `{"gstin":"` + validGSTIN + `"}`,
			setup: func(gst *mocks.MockGSTFetcher) {
				gst.EXPECT().FetchGSTDetails(gomock.Any(), validGSTIN).
					Return(nil, &client.FetchError{Kind: client.KindProvider, Provider: client.ProviderGST, Message: "GSTIN not found"})
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "GSTIN not found",
		},
		{
			name: "network failure",
			body: `{"gstin":"` + validGSTIN + `"}`,
			setup: func(gst *mocks.MockGSTFetcher) {
				gst.EXPECT().FetchGSTDetails(gomock.Any(), validGSTIN).
					Return(nil, &client.FetchError{Kind: client.KindNetwork, Provider: client.ProviderGST, Message: "Network error: connection refused"})
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Network error: connection refused",
		},
		{
			name: "unexpected failure",
			body: `{"gstin":"` + validGSTIN + `"}`,
			setup: func(gst *mocks.MockGSTFetcher) {
				gst.EXPECT().FetchGSTDetails(gomock.Any(), validGSTIN).
					Return(nil, errors.New("nil pointer somewhere"))
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
		{
			name:        "malformed json",
			body:        `{"gstin":`,
			setup:       func(*mocks.MockGSTFetcher) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, gst, _ := newMockRouter(t)
			tt.setup(gst)

			rec := doJSON(t, router, http.MethodPost, "/api/gst", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantSuccess, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
			if !tt.wantSuccess {
				assert.JSONEq(t, "null", string(env.Data))
			}
		})
	}
}

func TestRouter_FetchBank(t *testing.T) {
	router, _, bank := newMockRouter(t)

	bank.EXPECT().FetchBankDetails(gomock.Any(), "HDFC0CAGSBK").
		Return(&dto.BankDetails{IFSCCode: "HDFC0CAGSBK", BankName: "HDFC Bank"}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/bank", `{"ifsc":" hdfc0cagsbk "}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Bank details fetched successfully", env.Message)

	var details dto.BankDetails
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Equal(t, "HDFC Bank", details.BankName)

	rec = doJSON(t, router, http.MethodPost, "/api/bank", `{"ifsc":"HDFC0CAGSB"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "IFSC code must be 11 characters long", decodeEnvelope(t, rec).Message)
}

func TestRouter_BulkGSTLimits(t *testing.T) {
	router, _, _ := newMockRouter(t)

	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = fmt.Sprintf("24DXCPP7145D1Z%d", i%10)
	}
	tooMany, err := json.Marshal(dto.BulkGSTRequest{GSTINList: eleven})
	require.NoError(t, err)

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"empty list", `{"gstin_list":[]}`, "Please provide a list of GSTINs"},
		{"missing list", `{}`, "Please provide a list of GSTINs"},
		{"malformed", `{"gstin_list":"24DXCPP7145D1ZE"}`, "Please provide a list of GSTINs"},
		{"over the limit", string(tooMany), "Maximum 10 GSTINs allowed per request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/bulk/gst", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
		})
	}
}

func TestRouter_BulkGSTPreservesOrder(t *testing.T) {
	router, gst, _ := newMockRouter(t)

	list := make([]string, 10)
	for i := range list {
		list[i] = fmt.Sprintf("24dxcpp7145d1z%d", i)
	}
	list[3] = "NOT-A-GSTIN"

	gst.EXPECT().FetchGSTDetails(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, gstin string) (*dto.GSTDetails, error) {
			if strings.HasSuffix(gstin, "7") {
				return nil, &client.FetchError{Kind: client.KindProvider, Message: "Failed to fetch GST details"}
			}
			return &dto.GSTDetails{GSTIN: gstin}, nil
		}).Times(9)

	body, err := json.Marshal(dto.BulkGSTRequest{GSTINList: list})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/bulk/gst", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Results []dto.GSTBulkResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "Processed 10 GSTINs", resp.Message)
	require.Len(t, resp.Results, 10)

	for i, r := range resp.Results {
		switch i {
		case 3:
			assert.Equal(t, "NOT-A-GSTIN", r.GSTIN)
			assert.False(t, r.Valid)
			assert.Equal(t, "Invalid GSTIN format", r.Message)
		case 7:
			assert.True(t, r.Valid)
			assert.False(t, r.Success)
			assert.Nil(t, r.Data)
		default:
			assert.Equal(t, fmt.Sprintf("24DXCPP7145D1Z%d", i), r.GSTIN)
			assert.True(t, r.Success)
			require.NotNil(t, r.Data)
			assert.Equal(t, r.GSTIN, r.Data.GSTIN)
		}
	}
}

func TestRouter_BulkBank(t *testing.T) {
	router, _, bank := newMockRouter(t)

	bank.EXPECT().FetchBankDetails(gomock.Any(), "SBIN0001234").
		Return(&dto.BankDetails{IFSCCode: "SBIN0001234"}, nil)
	bank.EXPECT().FetchBankDetails(gomock.Any(), "SBIN0009999").
		Return(nil, &client.FetchError{Kind: client.KindNotFound, Message: "Invalid IFSC code or bank details not found"})

	rec := doJSON(t, router, http.MethodPost, "/api/bulk/bank",
		`{"ifsc_list":["sbin0001234","SBIN0009999","XYZ"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string               `json:"message"`
		Results []dto.BankBulkResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Processed 3 IFSC codes", resp.Message)
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Success)
	assert.Equal(t, "Invalid IFSC code or bank details not found", resp.Results[1].Message)
	assert.Equal(t, "Invalid IFSC format", resp.Results[2].Message)

	rec = doJSON(t, router, http.MethodPost, "/api/bulk/bank", `{"ifsc_list":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide a list of IFSC codes", decodeEnvelope(t, rec).Message)
}

func TestRouter_WithRealClients(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/gst/"):
			_, _ = w.Write([]byte(`{"flag":false,"message":"GSTIN Not Found"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	gst := client.NewGSTClient(upstream.URL+"/gst", "key")
	bank := client.NewIFSCClient(upstream.URL + "/ifsc")
	router := newRouter(t, gst, bank, routerOptions{})

	rec := doJSON(t, router, http.MethodPost, "/api/gst", `{"gstin":"`+validGSTIN+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "GSTIN Not Found", env.Message)
	assert.JSONEq(t, "null", string(env.Data))

	rec = doJSON(t, router, http.MethodPost, "/api/bank", `{"ifsc":"SBIN0001234"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid IFSC code or bank details not found", decodeEnvelope(t, rec).Message)
}

func TestRouter_PanicRecovery(t *testing.T) {
	router, _, _ := newMockRouter(t)
	router.GET("/boom", func(*gin.Context) { panic("kaboom") })

	rec := doJSON(t, router, http.MethodGet, "/boom", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotContains(t, rec.Body.String(), "kaboom")
}

func TestRouter_RequestID(t *testing.T) {
	router, _, _ := newMockRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(handler.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(handler.RequestIDHeader))

	rec = doJSON(t, router, http.MethodGet, "/api/health", "")
	_, err := uuid.Parse(rec.Header().Get(handler.RequestIDHeader))
	assert.NoError(t, err)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _, _ := newMockRouter(t)

	rec := doJSON(t, router, http.MethodOptions, "/api/gst", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	router := newRouter(t, mocks.NewMockGSTFetcher(ctrl), mocks.NewMockBankFetcher(ctrl), routerOptions{metrics: m})

	doJSON(t, router, http.MethodGet, "/api/health", "")
	doJSON(t, router, http.MethodGet, "/missing", "")

	rec := doJSON(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `gstbank_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
	assert.Contains(t, body, `gstbank_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	router, _, _ := newMockRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Endpoint not found", env.Message)
}

func qrPNG(t *testing.T, content string) []byte {
	t.Helper()

	img, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, 300, 300, nil)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func blankPNG(t *testing.T) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewGray(image.Rect(0, 0, 64, 64))))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestRouter_Extract(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		data        func(t *testing.T) []byte
		maxFileSize int64
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "upi qr code",
			filename:    "payment.png",
			contentType: "application/octet-stream",
			data: func(t *testing.T) []byte {
				return qrPNG(t, "upi://pay?pa=acme@SBIN0001234.ifsc.npci&pn=ACME")
			},
			wantStatus:  http.StatusOK,
			wantMessage: "Found 0 GSTINs and 1 IFSC codes",
		},
		{
			name:        "unsupported type",
			filename:    "notes.txt",
			contentType: "text/plain",
			data:        func(*testing.T) []byte { return []byte("GSTIN 24DXCPP7145D1ZE") },
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid file type. Supported: PDF, PNG, JPEG",
		},
		{
			name:        "too large",
			filename:    "big.png",
			contentType: "image/png",
			data:        func(t *testing.T) []byte { return blankPNG(t) },
			maxFileSize: 16,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "File too large. Maximum size is 16 bytes",
		},
		{
			name:        "corrupt image",
			filename:    "broken.png",
			contentType: "image/png",
			data: func(*testing.T) []byte {
				return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xff}, 64)...)
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Unable to read document. Check the file and password.",
		},
		{
			name:        "nothing found",
			filename:    "blank.png",
			contentType: "image/png",
			data:        func(t *testing.T) []byte { return blankPNG(t) },
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "No GSTIN or IFSC code found in document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			router := newRouter(t, mocks.NewMockGSTFetcher(ctrl), mocks.NewMockBankFetcher(ctrl),
				routerOptions{maxFileSize: tt.maxFileSize})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, uploadRequest(t, tt.filename, tt.contentType, tt.data(t), nil))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
		})
	}
}

func TestRouter_ExtractWithLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	bank := mocks.NewMockBankFetcher(ctrl)
	bank.EXPECT().FetchBankDetails(gomock.Any(), "SBIN0001234").
		Return(&dto.BankDetails{IFSCCode: "SBIN0001234", Branch: "MG ROAD"}, nil)

	router := newRouter(t, mocks.NewMockGSTFetcher(ctrl), bank, routerOptions{})

	req := uploadRequest(t, "payment.png", "image/png",
		qrPNG(t, "upi://pay?pa=acme@SBIN0001234.ifsc.npci"),
		map[string]string{"lookup": "true"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result dto.ExtractResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.Equal(t, []dto.ExtractSource{dto.SourceQR}, result.Sources)
	require.Len(t, result.BankResults, 1)
	assert.Equal(t, "MG ROAD", result.BankResults[0].Data.Branch)
	assert.Empty(t, result.GSTResults)
}
