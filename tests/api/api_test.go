//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

const serviceURL = "http://localhost:8080"

// TestAPI_FullWizardFlow walks one reservation through the whole wizard
// against a running service: catalog setup, participant entry, gate
// refusals, cart and adjustments, and the final submission.
func TestAPI_FullWizardFlow(t *testing.T) {
	waitForService(t)

	var sessionID string
	var participantID string

	t.Run("Step1_CreateExperience", func(t *testing.T) {
		t.Log("STEP 1: Create Experience")
		t.Log("   Request:  POST /api/v1/experiences")

		req := map[string]interface{}{
			"name":       "Canopy Walk",
			"category":   "trail",
			"price":      180,
			"start_date": "2026-09-10T00:00:00Z",
			"end_date":   "2026-09-12T00:00:00Z",
		}
		resp := post(t, serviceURL+"/api/v1/experiences", req)
		mustStatus(t, resp, 201, "should create experience")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		t.Logf("   Result:   id=%v, name='%v'", body["id"], body["name"])
	})

	t.Run("Step2_StartSession", func(t *testing.T) {
		t.Log("STEP 2: Start Wizard Session")
		t.Log("   Request:  POST /api/v1/wizard/sessions")

		resp := post(t, serviceURL+"/api/v1/wizard/sessions", nil)
		mustStatus(t, resp, 201, "should start session")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		sessionID, _ = body["session_id"].(string)
		if sessionID == "" {
			t.Fatal("missing session_id in response")
		}
		if body["step"] != "people" {
			t.Fatalf("expected step 'people', got %v", body["step"])
		}

		participants := body["participants"].([]interface{})
		first := participants[0].(map[string]interface{})
		participantID = first["id"].(string)

		t.Logf("   Result:   session=%s, step=%v, rows=%d", sessionID, body["step"], len(participants))
	})

	t.Run("Step3_NextRefusedOnEmptyRow", func(t *testing.T) {
		t.Log("STEP 3: Advance With Empty Row (refused)")
		t.Log("   Request:  POST /api/v1/wizard/sessions/{sid}/next")

		resp := post(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID+"/next", nil)
		mustStatus(t, resp, 422, "empty participant row must block the step change")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		if body["step"] != "people" {
			t.Fatalf("gate should route back to 'people', got %v", body["step"])
		}
		t.Logf("   Result:   HTTP 422, message='%v'", body["message"])
	})

	t.Run("Step4_FillParticipant", func(t *testing.T) {
		t.Log("STEP 4: Fill Participant Row")
		t.Log("   Request:  PATCH /api/v1/wizard/sessions/{sid}/participants/{pid}")

		req := map[string]string{
			"name":        "Ana Silva",
			"phone":       "51999991234",
			"birth_date":  "15/06/1990",
			"national_id": "529.982.247-25",
			"gender":      "FEMALE",
		}
		resp := patch(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID+"/participants/"+participantID, req)
		mustStatus(t, resp, 200, "should accept the participant patch")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		row := body["participants"].([]interface{})[0].(map[string]interface{})
		if row["valid"] != true {
			t.Fatalf("row should be valid, issues: %v", row["issues"])
		}
		t.Logf("   Result:   phone='%v', national_id='%v', valid=%v", row["phone"], row["national_id"], row["valid"])
	})

	t.Run("Step5_AdvanceToExperiences", func(t *testing.T) {
		t.Log("STEP 5: Advance To Experiences")
		t.Log("   Request:  POST /api/v1/wizard/sessions/{sid}/next")

		resp := post(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID+"/next", nil)
		mustStatus(t, resp, 200, "valid roster should pass the gate")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		if body["step"] != "experiences" {
			t.Fatalf("expected step 'experiences', got %v", body["step"])
		}
		t.Logf("   Result:   step=%v", body["step"])
	})

	t.Run("Step6_AddToCart", func(t *testing.T) {
		t.Log("STEP 6: Add Experience To Cart")
		t.Log("   Request:  POST /api/v1/wizard/sessions/{sid}/cart")

		resp := post(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID+"/cart", map[string]interface{}{
			"experience_id": 1,
		})
		mustStatus(t, resp, 204, "should add the experience")
		resp.Body.Close()
	})

	t.Run("Step7_FinishRefusedWithoutAdjustment", func(t *testing.T) {
		t.Log("STEP 7: Finish Without Adjustment (refused)")
		t.Log("   Request:  POST /api/v1/wizard/sessions/{sid}/finish")

		resp := post(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID+"/finish", nil)
		mustStatus(t, resp, 422, "missing capacity must block submission")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		if body["step"] != "experiences" {
			t.Fatalf("gate should route to 'experiences', got %v", body["step"])
		}
		t.Logf("   Result:   HTTP 422, experience='%v'", body["experience"])
	})

	t.Run("Step8_SetAdjustment", func(t *testing.T) {
		t.Log("STEP 8: Set Capacity Adjustment")
		t.Log("   Request:  PUT /api/v1/wizard/sessions/{sid}/adjustments/1")

		resp := put(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID+"/adjustments/1", map[string]interface{}{
			"men":   0,
			"women": 1,
		})
		mustStatus(t, resp, 200, "should save the adjustment")
		resp.Body.Close()
	})

	t.Run("Step9_Finish", func(t *testing.T) {
		t.Log("STEP 9: Finish")
		t.Log("   Request:  POST /api/v1/wizard/sessions/{sid}/finish")

		resp := post(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID+"/finish", nil)
		mustStatus(t, resp, 201, "submission should succeed")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		reservation := body["reservation"].(map[string]interface{})
		if reservation["status"] != "pending" {
			t.Fatalf("expected status 'pending', got %v", reservation["status"])
		}
		t.Logf("   Result:   HTTP 201, reservation id=%v, message='%v'", reservation["id"], body["message"])
	})

	t.Run("Step10_SessionReset", func(t *testing.T) {
		t.Log("STEP 10: Verify Session Reset")
		t.Log("   Request:  GET /api/v1/wizard/sessions/{sid}")

		resp := get(t, serviceURL+"/api/v1/wizard/sessions/"+sessionID)
		mustStatus(t, resp, 200, "session should survive submission")

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		if body["step"] != "people" {
			t.Fatalf("draft should be back on 'people', got %v", body["step"])
		}
		t.Logf("   Result:   step=%v, ready for the next reservation", body["step"])
	})
}

// Helper functions

func waitForService(t *testing.T) {
	t.Log("Waiting for service to be ready...")

	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(serviceURL + "/health")
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			t.Log("Service is ready")
			return
		}
		time.Sleep(1 * time.Second)
	}

	t.Fatal("service did not become ready in time")
}

func mustStatus(t *testing.T, resp *http.Response, want int, msg string) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s: expected HTTP %d, got %d", msg, want, resp.StatusCode)
	}
}

func get(t *testing.T, url string) *http.Response {
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func post(t *testing.T, url string, body interface{}) *http.Response {
	return send(t, http.MethodPost, url, body)
}

func patch(t *testing.T, url string, body interface{}) *http.Response {
	return send(t, http.MethodPatch, url, body)
}

func put(t *testing.T, url string, body interface{}) *http.Response {
	return send(t, http.MethodPut, url, body)
}

func send(t *testing.T, method, url string, body interface{}) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && resp.StatusCode < 400 {
		t.Fatalf("decode response: %v", err)
	}
}

func TestMain(m *testing.M) {
	fmt.Println("Starting API tests...")
	fmt.Println("Make sure the service is running: make docker-up")
	fmt.Println("")

	code := m.Run()

	fmt.Println("")
	fmt.Println("API tests complete")
	os.Exit(code)
}
