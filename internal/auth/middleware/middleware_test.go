package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("secret")
	token, err := a.IssueJWT(42, "Dr. Ahmed", "ahmed@example.edu")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := a.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Sub != "42" || claims.Name != "Dr. Ahmed" || claims.Email != "ahmed@example.edu" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "examgen" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, err := NewAuthService("secret-a").IssueJWT(1, "n", "e")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewAuthService("secret-b").Parse(token); err == nil {
		t.Fatal("want error for wrong signing key")
	}
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("secret")
	var gotSub int64
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/materials", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/materials", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d", rec.Code)
	}

	token, err := a.IssueJWT(7, "n", "e")
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/materials", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d", rec.Code)
	}
	if gotSub != 7 {
		t.Errorf("subject = %d, want 7", gotSub)
	}
}
