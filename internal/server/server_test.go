package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmynk/receipt-points/internal/service"
	"github.com/mmynk/receipt-points/internal/storage/memory"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := memory.New()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ts := httptest.NewServer(New(service.NewReceiptService(store)))
	t.Cleanup(func() {
		ts.Close()
		store.Close()
	})
	return ts
}

func postReceipt(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/receipts/process", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /receipts/process failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const targetReceipt = `{
	"retailer": "Target",
	"purchaseDate": "2024-02-07",
	"purchaseTime": "15:30",
	"total": "19.99",
	"items": [
		{"shortDescription": "Milk", "price": "3.99"},
		{"shortDescription": "Bread", "price": "16.00"}
	]
}`

func TestProcessThenGetPoints(t *testing.T) {
	ts := setupTestServer(t)

	resp := postReceipt(t, ts, targetReceipt)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var processBody struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&processBody); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if processBody.ID == "" {
		t.Fatal("expected non-empty id")
	}

	getResp, err := http.Get(fmt.Sprintf("%s/receipts/%s/points", ts.URL, processBody.ID))
	if err != nil {
		t.Fatalf("GET points failed: %v", err)
	}
	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", getResp.StatusCode)
	}
	var pointsBody struct {
		Points int64 `json:"points"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&pointsBody); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if pointsBody.Points != 27 {
		t.Errorf("points = %d, want 27", pointsBody.Points)
	}
}

func TestProcessReceiptInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"retailer": `},
		{"wrong field type", `{"retailer": "Target", "purchaseDate": "2024-02-07", "purchaseTime": "15:30", "total": 19.99, "items": []}`},
		{"missing purchase date", `{"retailer": "Target", "purchaseTime": "15:30", "total": "0.00", "items": []}`},
		{"bad month", `{"retailer": "Target", "purchaseDate": "2024-13-07", "purchaseTime": "15:30", "total": "0.00", "items": []}`},
		{"bad hour", `{"retailer": "Target", "purchaseDate": "2024-02-07", "purchaseTime": "25:30", "total": "0.00", "items": []}`},
		{"three decimal price", `{"retailer": "Target", "purchaseDate": "2024-02-07", "purchaseTime": "15:30", "total": "15.339", "items": [{"shortDescription": "A", "price": "15.339"}]}`},
		{"sum mismatch", `{"retailer": "Target", "purchaseDate": "2024-02-07", "purchaseTime": "15:30", "total": "20.00", "items": [{"shortDescription": "Milk", "price": "3.99"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)
			resp := postReceipt(t, ts, tt.body)

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}

			var errBody struct {
				Description string `json:"description"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			// Every failure mode reports the identical opaque message.
			if errBody.Description != "The receipt is invalid." {
				t.Errorf("description = %q, want %q", errBody.Description, "The receipt is invalid.")
			}
		})
	}
}

func TestGetPointsNotFound(t *testing.T) {
	ts := setupTestServer(t)

	for _, id := range []string{
		"adb6b560-0eef-42bc-9d16-df48f30e89b2",
		"not-a-uuid",
	} {
		resp, err := http.Get(fmt.Sprintf("%s/receipts/%s/points", ts.URL, id))
		if err != nil {
			t.Fatalf("GET points failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status for %q = %d, want 404", id, resp.StatusCode)
		}

		var errBody struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if errBody.Description != "No receipt found for that ID." {
			t.Errorf("description = %q, want %q", errBody.Description, "No receipt found for that ID.")
		}
	}
}

func TestHealthz(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
