package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAndExpose(t *testing.T) {
	m := New("contable-api")

	m.RecordHTTPRequest("POST", "/api/sales/invoices", 201, 15*time.Millisecond)
	m.RecordDocumentCreated("SALES_INVOICE")
	m.RecordDocumentCreated("SALES_INVOICE")
	m.RecordRejection("INSUFFICIENT_STOCK")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentsCreated.WithLabelValues("contable-api", "SALES_INVOICE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("contable-api", "INSUFFICIENT_STOCK")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "contable_http_requests_total"))
	assert.True(t, strings.Contains(body, "contable_documents_created_total"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		m.InFlight(1)
		m.RecordDocumentCreated("RECEIPT")
		m.RecordDocumentDeleted("RECEIPT")
		m.RecordRejection("CONFLICT")
	})
}
