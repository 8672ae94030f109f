package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aerologix/aerologix/internal/fleet"
	"github.com/aerologix/aerologix/internal/models"
	"github.com/aerologix/aerologix/internal/testutil"
)

// testEnv sets up a temp media dir, SQLite DB, service, and router.
func testEnv(t *testing.T) (*fleet.Service, http.Handler) {
	t.Helper()

	db := testutil.TestDB(t)
	_, media := testutil.TestMedia(t)

	svc := fleet.New(db, media, nil, map[string]int{
		models.PlanFree:      2,
		models.PlanPro:       10,
		models.PlanUnlimited: -1,
	}, time.Hour)
	return svc, NewRouter(svc, media, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// signup registers an account and returns its bearer token.
func signup(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"name":     "Test Pilot",
		"password": "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Token
}

// createAircraft registers a minimal aircraft and returns its ID.
func createAircraft(t *testing.T, router http.Handler, token, registration string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/aircraft", token, map[string]any{
		"registration":  registration,
		"aircraft_type": "airplane",
		"manufacturer":  "Cessna",
		"model":         "172N",
		"year":          1978,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create aircraft status = %d, body = %s", w.Code, w.Body.String())
	}
	var a models.Aircraft
	_ = json.Unmarshal(w.Body.Bytes(), &a)
	return a.ID
}

func TestSignupLoginAndMe(t *testing.T) {
	_, router := testEnv(t)

	token := signup(t, router, "pilot@example.com")

	w := doJSON(t, router, http.MethodGet, "/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	var me models.User
	_ = json.Unmarshal(w.Body.Bytes(), &me)
	if me.Email != "pilot@example.com" {
		t.Errorf("email = %q", me.Email)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Error("user payload leaks password field")
	}

	// Login with uppercase email works; password hash never travels.
	w = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "PILOT@example.com",
		"password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	_, router := testEnv(t)
	signup(t, router, "pilot@example.com")

	// Wrong password and unknown account must be the same 401.
	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "pilot@example.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password = %d, want 401", w.Code)
	}
	wrongBody := w.Body.String()

	w = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email = %d, want 401", w.Code)
	}
	if w.Body.String() != wrongBody {
		t.Error("unknown email and wrong password responses differ")
	}
}

func TestSignupValidation(t *testing.T) {
	_, router := testEnv(t)

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "not-an-email", "password": "correct-horse",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad email = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "short@example.com", "password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short password = %d, want 400", w.Code)
	}
}

func TestDuplicateSignup(t *testing.T) {
	_, router := testEnv(t)
	signup(t, router, "pilot@example.com")

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "pilot@example.com", "password": "correct-horse",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup = %d, want 409", w.Code)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")

	w := doJSON(t, router, http.MethodPost, "/auth/logout", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/auth/me", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout = %d, want 401", w.Code)
	}
}

func TestUnauthenticatedRequests(t *testing.T) {
	_, router := testEnv(t)

	for _, path := range []string{"/aircraft", "/shares/received", "/auth/me"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, w.Code)
		}
	}
	w := doJSON(t, router, http.MethodGet, "/aircraft", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bogus token = %d, want 401", w.Code)
	}
}

func TestAircraftCRUD(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")

	id := createAircraft(t, router, token, "c-gabc")

	// Registration is stored uppercase.
	w := doJSON(t, router, http.MethodGet, "/aircraft/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var a models.Aircraft
	_ = json.Unmarshal(w.Body.Bytes(), &a)
	if a.Registration != "C-GABC" {
		t.Errorf("registration = %q, want C-GABC", a.Registration)
	}

	// Partial update leaves other fields alone.
	w = doJSON(t, router, http.MethodPut, "/aircraft/"+id, token, map[string]any{
		"engine_hours": 1234.5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &a)
	if a.EngineHours != 1234.5 {
		t.Errorf("engine_hours = %v", a.EngineHours)
	}
	if a.Model != "172N" {
		t.Errorf("model = %q, want untouched 172N", a.Model)
	}

	// Delete, then 404.
	w = doJSON(t, router, http.MethodDelete, "/aircraft/"+id, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/aircraft/"+id, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

func TestAircraftPlanLimit(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")

	createAircraft(t, router, token, "C-GAAA")
	createAircraft(t, router, token, "C-GBBB")

	w := doJSON(t, router, http.MethodPost, "/aircraft", token, map[string]any{
		"registration": "C-GCCC",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("over-limit create = %d, want 403", w.Code)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")

	createAircraft(t, router, token, "C-GABC")
	w := doJSON(t, router, http.MethodPost, "/aircraft", token, map[string]any{
		"registration": "c-gabc",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate registration = %d, want 409", w.Code)
	}
}

func TestStrangerSeesNotFound(t *testing.T) {
	_, router := testEnv(t)
	owner := signup(t, router, "owner@example.com")
	stranger := signup(t, router, "stranger@example.com")

	id := createAircraft(t, router, owner, "C-GABC")

	w := doJSON(t, router, http.MethodGet, "/aircraft/"+id, stranger, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("stranger get = %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/aircraft/"+id, stranger, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("stranger delete = %d, want 404", w.Code)
	}
}

// inviteAndAccept walks the full share handshake and returns the share ID.
func inviteAndAccept(t *testing.T, router http.Handler, owner, mechanic, aircraftID, mechanicEmail, role string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/shares", owner, map[string]string{
		"aircraft_id":    aircraftID,
		"mechanic_email": mechanicEmail,
		"role":           role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("invite status = %d, body = %s", w.Code, w.Body.String())
	}
	var share models.Share
	_ = json.Unmarshal(w.Body.Bytes(), &share)

	w = doJSON(t, router, http.MethodPost, "/shares/"+share.ID+"/accept", mechanic, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("accept status = %d, body = %s", w.Code, w.Body.String())
	}
	return share.ID
}

func TestShareLifecycle(t *testing.T) {
	_, router := testEnv(t)
	owner := signup(t, router, "owner@example.com")
	mech := signup(t, router, "mech@example.com")

	id := createAircraft(t, router, owner, "C-GABC")

	// Pending share grants nothing.
	w := doJSON(t, router, http.MethodPost, "/shares", owner, map[string]string{
		"aircraft_id":    id,
		"mechanic_email": "mech@example.com",
		"role":           models.RoleViewer,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("invite status = %d, body = %s", w.Code, w.Body.String())
	}
	var share models.Share
	_ = json.Unmarshal(w.Body.Bytes(), &share)

	w = doJSON(t, router, http.MethodGet, "/aircraft/"+id, mech, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("pending share read = %d, want 404", w.Code)
	}

	// Invitation shows up in the mechanic's inbox.
	w = doJSON(t, router, http.MethodGet, "/shares/received", mech, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("received status = %d", w.Code)
	}
	var inbox struct {
		Shares []models.Share `json:"shares"`
		Total  int            `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &inbox)
	if inbox.Total != 1 {
		t.Fatalf("inbox total = %d, want 1", inbox.Total)
	}

	// Accept grants read access.
	w = doJSON(t, router, http.MethodPost, "/shares/"+share.ID+"/accept", mech, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("accept status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/aircraft/"+id, mech, nil)
	if w.Code != http.StatusOK {
		t.Errorf("active share read = %d, want 200", w.Code)
	}

	// Shared aircraft appear in the shared listing.
	w = doJSON(t, router, http.MethodGet, "/aircraft/shared", mech, nil)
	var listing struct {
		Aircraft []models.Aircraft `json:"aircraft"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &listing)
	if len(listing.Aircraft) != 1 || listing.Aircraft[0].ID != id {
		t.Errorf("shared listing = %+v", listing.Aircraft)
	}

	// Revoke removes access again.
	w = doJSON(t, router, http.MethodDelete, "/shares/"+share.ID, owner, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/aircraft/"+id, mech, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("read after revoke = %d, want 404", w.Code)
	}
}

func TestViewerCannotEdit(t *testing.T) {
	_, router := testEnv(t)
	owner := signup(t, router, "owner@example.com")
	viewer := signup(t, router, "viewer@example.com")

	id := createAircraft(t, router, owner, "C-GABC")
	inviteAndAccept(t, router, owner, viewer, id, "viewer@example.com", models.RoleViewer)

	w := doJSON(t, router, http.MethodPut, "/aircraft/"+id, viewer, map[string]any{
		"description": "nope",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("viewer update = %d, want 403", w.Code)
	}
}

func TestContributorCanEditNotDelete(t *testing.T) {
	_, router := testEnv(t)
	owner := signup(t, router, "owner@example.com")
	contrib := signup(t, router, "amo@example.com")

	id := createAircraft(t, router, owner, "C-GABC")
	inviteAndAccept(t, router, owner, contrib, id, "amo@example.com", models.RoleContributor)

	w := doJSON(t, router, http.MethodPut, "/aircraft/"+id, contrib, map[string]any{
		"engine_hours": 2500.0,
	})
	if w.Code != http.StatusOK {
		t.Errorf("contributor update = %d, want 200", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/aircraft/"+id, contrib, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("contributor delete = %d, want 403", w.Code)
	}
}

func TestInviteValidation(t *testing.T) {
	_, router := testEnv(t)
	owner := signup(t, router, "owner@example.com")
	id := createAircraft(t, router, owner, "C-GABC")

	// Bad role.
	w := doJSON(t, router, http.MethodPost, "/shares", owner, map[string]string{
		"aircraft_id": id, "mechanic_email": "mech@example.com", "role": "admin",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad role = %d, want 400", w.Code)
	}

	// Self invite.
	w = doJSON(t, router, http.MethodPost, "/shares", owner, map[string]string{
		"aircraft_id": id, "mechanic_email": "owner@example.com", "role": models.RoleViewer,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("self invite = %d, want 409", w.Code)
	}
}

func TestELTRecordAndStatus(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")
	id := createAircraft(t, router, token, "C-GABC")

	// No record yet: record 404s, status reports none.
	w := doJSON(t, router, http.MethodGet, "/elt/aircraft/"+id, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unconfigured record = %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/elt/aircraft/"+id+"/status", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unconfigured status = %d, want 200", w.Code)
	}
	var report struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &report)
	if report.Status != "none" {
		t.Errorf("status = %q, want none", report.Status)
	}

	// Healthy record.
	future := time.Now().AddDate(2, 0, 0).Format("2006-01-02")
	recent := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	w = doJSON(t, router, http.MethodPut, "/elt/aircraft/"+id, token, map[string]any{
		"brand":               "Kannad",
		"model":               "406 AF",
		"last_test_date":      recent,
		"battery_expiry_date": future,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put elt = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/elt/aircraft/"+id+"/status", token, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &report)
	if report.Status != "ok" {
		t.Errorf("healthy status = %q, want ok", report.Status)
	}

	// Expired battery goes critical.
	past := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	w = doJSON(t, router, http.MethodPut, "/elt/aircraft/"+id, token, map[string]any{
		"brand":               "Kannad",
		"last_test_date":      recent,
		"battery_expiry_date": past,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put elt = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/elt/aircraft/"+id+"/status", token, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &report)
	if report.Status != "critical" {
		t.Errorf("expired battery status = %q, want critical", report.Status)
	}

	// Owner removes the record.
	w = doJSON(t, router, http.MethodDelete, "/elt/aircraft/"+id, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete elt = %d", w.Code)
	}
}

func TestComponentSettingsDefaults(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")
	id := createAircraft(t, router, token, "C-GABC")

	w := doJSON(t, router, http.MethodGet, "/components/aircraft/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get defaults = %d", w.Code)
	}
	var resp componentSettingsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.EngineTBOHours != 2000 {
		t.Errorf("default TBO = %v, want 2000", resp.EngineTBOHours)
	}
	if resp.Regulations.AvionicsCertificationMonths != 24 {
		t.Errorf("avionics months = %d, want 24", resp.Regulations.AvionicsCertificationMonths)
	}

	// Store custom settings; invalid propeller type rejected.
	w = doJSON(t, router, http.MethodPut, "/components/aircraft/"+id, token, map[string]any{
		"propeller_type": "turbo", "engine_tbo_hours": 1800,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad propeller type = %d, want 400", w.Code)
	}
	w = doJSON(t, router, http.MethodPut, "/components/aircraft/"+id, token, map[string]any{
		"propeller_type": "variable", "engine_tbo_hours": 1800,
		"avionics_certification_interval_months": 24,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put settings = %d, body = %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodGet, "/components/aircraft/"+id, token, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.EngineTBOHours != 1800 || resp.PropellerType != "variable" {
		t.Errorf("stored settings = %+v", resp.ComponentSettings)
	}
}

func TestRegulationsEndpoint(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")

	w := doJSON(t, router, http.MethodGet, "/components/regulations", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("regulations = %d", w.Code)
	}
	var resp regulationsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Regulations.MagnetosDefaultHours != 500 {
		t.Errorf("magnetos hours = %d, want 500", resp.Regulations.MagnetosDefaultHours)
	}
	if resp.Disclaimer == "" {
		t.Error("missing disclaimer")
	}
}

func TestPhotoUploadAndServe(t *testing.T) {
	_, router := testEnv(t)
	token := signup(t, router, "pilot@example.com")
	id := createAircraft(t, router, token, "C-GABC")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "panel.jpg")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("jpeg-bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/aircraft/"+id+"/photo", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}

	// Photo URL lands on the aircraft.
	gw := doJSON(t, router, http.MethodGet, "/aircraft/"+id, token, nil)
	var a models.Aircraft
	_ = json.Unmarshal(gw.Body.Bytes(), &a)
	if a.PhotoURL != "/media/"+id+"/panel.jpg" {
		t.Errorf("photo_url = %q", a.PhotoURL)
	}

	// Media listing shows the file.
	lw := doJSON(t, router, http.MethodGet, "/aircraft/"+id+"/media", token, nil)
	if lw.Code != http.StatusOK {
		t.Fatalf("list media = %d", lw.Code)
	}
	var listing struct {
		Media []models.MediaInfo `json:"media"`
	}
	_ = json.Unmarshal(lw.Body.Bytes(), &listing)
	if len(listing.Media) != 1 || listing.Media[0].Filename != "panel.jpg" {
		t.Errorf("media listing = %+v", listing.Media)
	}
}

func TestMediaRouterServesFiles(t *testing.T) {
	db := testutil.TestDB(t)
	_, media := testutil.TestMedia(t)

	svc := fleet.New(db, media, nil, map[string]int{models.PlanFree: 2}, time.Hour)
	apiRouter := NewRouter(svc, media, nil)
	mediaRouter := MediaRouter(svc, media)

	token := signup(t, apiRouter, "pilot@example.com")
	stranger := signup(t, apiRouter, "stranger@example.com")
	id := createAircraft(t, apiRouter, token, "C-GABC")

	if err := media.Write(id, "panel.jpg", []byte("jpeg-bytes")); err != nil {
		t.Fatal(err)
	}

	// Owner can fetch the file.
	w := doJSON(t, mediaRouter, http.MethodGet, "/"+id+"/panel.jpg", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("serve status = %d", w.Code)
	}
	if w.Body.String() != "jpeg-bytes" {
		t.Errorf("served body = %q", w.Body.String())
	}

	// Strangers get 404, no auth gets 401.
	w = doJSON(t, mediaRouter, http.MethodGet, "/"+id+"/panel.jpg", stranger, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("stranger serve = %d, want 404", w.Code)
	}
	w = doJSON(t, mediaRouter, http.MethodGet, "/"+id+"/panel.jpg", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous serve = %d, want 401", w.Code)
	}
}
