package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.APIConfig{
		BaseURL:        srv.URL,
		Token:          "sekret",
		PageSize:       2,
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	return client, srv
}

func TestExtractTablePaginatesToTotal(t *testing.T) {
	rows := []string{
		`{"rut_alum":"1-9","nomb_alum":"Ana"}`,
		`{"rut_alum":"2-7","nomb_alum":"Luis"}`,
		`{"rut_alum":"3-5","nomb_alum":"Sofía"}`,
	}

	var requests int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		end := offset + 2
		if end > len(rows) {
			end = len(rows)
		}
		page := []string{}
		if offset < len(rows) {
			page = rows[offset:end]
		}

		fmt.Fprintf(w, `{"tabla":"alumn_pract","limit":2,"offset":%d,"total":%d,"filas":[%s]}`,
			offset, len(rows), strings.Join(page, ","))
	}))

	result, err := client.ExtractTable(context.Background(), "alumn_pract")
	require.NoError(t, err)

	// Sum of page sizes must equal the provider-reported total.
	require.Equal(t, len(rows), result.Len())
	require.Equal(t, 2, requests)

	// Column order follows source declaration order.
	require.Equal(t, []string{"rut_alum", "nomb_alum"}, result.Columns)
	require.Equal(t, "Sofía", result.Records[2]["nomb_alum"])
}

func TestExtractTableStopsOnEmptyPage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset == 0 {
			// Total overstates the available rows; the empty page ends it.
			fmt.Fprint(w, `{"total":10,"filas":[{"rut_alum":"1-9"}]}`)
			return
		}
		fmt.Fprint(w, `{"total":10,"filas":[]}`)
	}))

	result, err := client.ExtractTable(context.Background(), "alumn_pract")
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
}

func TestExtractTableNormalizesValues(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total":1,"filas":[{"rut_alum":"1-9","ano_ingreso_alum":2021,"cel_alum":null}]}`)
	}))

	result, err := client.ExtractTable(context.Background(), "alumn_pract")
	require.NoError(t, err)
	require.Equal(t, "2021", result.Records[0]["ano_ingreso_alum"])
	require.Equal(t, "", result.Records[0]["cel_alum"])
}

func TestExtractTableTransportError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal failure", http.StatusInternalServerError)
	}))

	_, err := client.ExtractTable(context.Background(), "alumn_pract")
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)

	// The token must never leak into error messages.
	require.Contains(t, err.Error(), "token=REDACTED")
	require.NotContains(t, err.Error(), "sekret")
	require.Contains(t, err.Error(), "internal failure")
}

func TestExtractTableMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))

	_, err := client.ExtractTable(context.Background(), "alumn_pract")

	var shapeErr *PayloadShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Contains(t, shapeErr.Reason, "malformed")
}

func TestExtractTableMissingRecordKey(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total":5,"rows":[]}`)
	}))

	_, err := client.ExtractTable(context.Background(), "alumn_pract")

	var shapeErr *PayloadShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Contains(t, shapeErr.Reason, "filas")
}

func TestBodyPreviewIsBounded(t *testing.T) {
	long := strings.Repeat("x", 1000)
	preview := bodyPreview([]byte(long))
	require.Len(t, preview, previewLimit+len("..."))
	require.True(t, strings.HasSuffix(preview, "..."))
}
