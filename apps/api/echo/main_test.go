package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/attendance"
	"github.com/trezcool/edunexus/core/batch"
	"github.com/trezcool/edunexus/core/institute"
	"github.com/trezcool/edunexus/core/payment"
	"github.com/trezcool/edunexus/core/record"
	"github.com/trezcool/edunexus/core/student"
	"github.com/trezcool/edunexus/core/teacher"
	"github.com/trezcool/edunexus/core/user"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

type httpErr struct {
	Error string `json:"error"`
}

type testApp struct {
	server Server
	deps   ServerDeps
	auth   *authenticator
}

func newTestConfig() *core.Config {
	return &core.Config{
		AppName:   "EduNexus",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: []byte("secret-test-key"),
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conf := newTestConfig()
	store := record.NewStore(record.NewMemSlot())

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	deps := ServerDeps{
		Conf:          conf,
		Logger:        testLogger{},
		Validate:      validate,
		Translator:    translator,
		Store:         store,
		UserSvc:       user.NewService(store, user.PlainVerifier{}),
		StudentSvc:    student.NewService(store),
		TeacherSvc:    teacher.NewService(store),
		BatchSvc:      batch.NewService(store),
		PaymentSvc:    payment.NewService(store, nil),
		AttendanceSvc: attendance.NewService(store),
		InstituteSvc:  institute.NewService(store),
	}
	return &testApp{
		server: NewServer(deps),
		deps:   deps,
		auth:   configureAuth(conf, deps.UserSvc),
	}
}

// adminToken logs the seeded root admin in.
func (app *testApp) adminToken(t *testing.T) string {
	return app.token(t, "admin")
}

// teacherToken logs the seeded non-admin account in.
func (app *testApp) teacherToken(t *testing.T) string {
	return app.token(t, "teacher")
}

func (app *testApp) token(t *testing.T, username string) string {
	t.Helper()
	usr, err := app.deps.UserSvc.GetByUsername(username)
	if err != nil {
		t.Fatalf("GetByUsername(%q) failed: %v", username, err)
	}
	token, err := app.auth.generateToken(app.auth.getUserClaims(usr))
	if err != nil {
		t.Fatalf("generateToken() failed: %v", err)
	}
	return token
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("code = %v; want %v; body %s", rec.Code, want, rec.Body.String())
	}
}

func checkHTTPErr(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, want httpErr) {
	t.Helper()
	checkCode(t, rec, wantCode)
	var got httpErr
	decodeBody(t, rec, &got)
	if got != want {
		t.Errorf("error = %+v; want %+v", got, want)
	}
}

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}
