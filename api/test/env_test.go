package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/pokecards/backend/api"
	"github.com/pokecards/backend/config"
	"github.com/pokecards/backend/core/claims"
	"github.com/pokecards/backend/core/payment"
	"github.com/pokecards/backend/core/product"
	"github.com/pokecards/backend/core/user"
	"github.com/pokecards/backend/random"
	"github.com/pokecards/backend/rate"
	"github.com/pokecards/backend/validate"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// PixCfg is the merchant identity every test order is issued under.
var PixCfg = config.Pix{
	Merchant: "PokéCards",
	Key:      "contato@pokecards.com.br",
}

// TestEnv is one API server over the shared test database, with its
// own cookie jar, one regular user and one admin.
type TestEnv struct {
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string

	UserName  string
	UserPass  string
	AdminName string
	AdminPass string

	client *http.Client
}

func NewTestEnv(t *testing.T, name string) *TestEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = time.Hour

	mux := api.APIMux(api.APIConfig{
		Log:          logger,
		DB:           testDB,
		Session:      session,
		Pix:          PixCfg,
		Gateway:      payment.Simulator{},
		LoginLimiter: rate.NewLimiter(1000, time.Hour, 1000),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}

	env := &TestEnv{
		DB:        testDB,
		Server:    srv,
		URL:       srv.URL,
		UserName:  name + "-user-" + random.String(6),
		UserPass:  "password123",
		AdminName: name + "-admin-" + random.String(6),
		AdminPass: "adminpass123",
		client:    &http.Client{Jar: jar},
	}

	env.seedUsers(t)
	return env
}

func (e *TestEnv) Client() *http.Client {
	return e.client
}

// Do sends a JSON request through the env's cookie jar, decodes the
// response into out when non-nil, and returns the status code.
func (e *TestEnv) Do(t *testing.T, method string, path string, body interface{}, out interface{}) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshalling request body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, rd)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := e.client.Do(r)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer w.Body.Close()

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decoding response of %s %s: %v", method, path, err)
		}
	}

	return w.StatusCode
}

func (e *TestEnv) Login(t *testing.T, username string, password string) {
	t.Helper()

	body := map[string]string{"username": username, "password": password}
	if st := e.Do(t, http.MethodPost, "/auth/login", body, nil); st != http.StatusOK {
		t.Fatalf("logging in as %s: status %d", username, st)
	}
}

func (e *TestEnv) Logout(t *testing.T) {
	t.Helper()

	if st := e.Do(t, http.MethodPost, "/auth/logout", nil, nil); st != http.StatusNoContent {
		t.Fatalf("logging out: status %d", st)
	}
}

// CreateProduct logs the admin in, creates a catalog entry and logs
// out again.
func (e *TestEnv) CreateProduct(t *testing.T, name string, price string, stock int) product.Product {
	t.Helper()

	e.Login(t, e.AdminName, e.AdminPass)
	defer e.Logout(t)

	body := map[string]interface{}{
		"name":     name,
		"price":    price,
		"category": "Carta Avulsa",
		"stock":    stock,
		"rating":   "4.8",
	}

	var prd product.Product
	if st := e.Do(t, http.MethodPost, "/products", body, &prd); st != http.StatusCreated {
		t.Fatalf("creating product %s: status %d", name, st)
	}

	return prd
}

// SetStock adjusts a product's stock through the admin route.
func (e *TestEnv) SetStock(t *testing.T, productID string, stock int) {
	t.Helper()

	e.Login(t, e.AdminName, e.AdminPass)
	defer e.Logout(t)

	body := map[string]int{"stock": stock}
	if st := e.Do(t, http.MethodPut, "/products/"+productID, body, nil); st != http.StatusOK {
		t.Fatalf("setting stock of product[%s]: status %d", productID, st)
	}
}

// FetchStock reads the live stock straight from the database.
func (e *TestEnv) FetchStock(t *testing.T, productID string) int {
	t.Helper()

	var stock int
	if err := e.DB.Get(&stock, "SELECT stock FROM products WHERE product_id = $1", productID); err != nil {
		t.Fatalf("selecting stock of product[%s]: %v", productID, err)
	}
	return stock
}

func (e *TestEnv) seedUsers(t *testing.T) {
	t.Helper()

	signup := map[string]string{
		"username": e.UserName,
		"email":    e.UserName + "@test.com",
		"password": e.UserPass,
	}
	if st := e.Do(t, http.MethodPost, "/auth/signup", signup, nil); st != http.StatusCreated {
		t.Fatalf("signing up test user: status %d", st)
	}
	e.Logout(t)

	// The admin is seeded directly: there is no route that grants the
	// role.
	hash, err := bcrypt.GenerateFromPassword([]byte(e.AdminPass), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing admin password: %v", err)
	}

	now := time.Now().UTC()
	adm := user.User{
		ID:           validate.GenerateID(),
		Username:     e.AdminName,
		Email:        e.AdminName + "@test.com",
		PasswordHash: hash,
		Role:         claims.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Create(context.Background(), e.DB, adm); err != nil {
		t.Fatalf("seeding admin user: %v", err)
	}
}
