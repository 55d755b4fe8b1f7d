package main

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"sirajadmin/internal/backend"
	"sirajadmin/internal/console"
	"sirajadmin/internal/ratelimiter"
	"sirajadmin/internal/session"
	"sirajadmin/internal/web"
)

// fakeAPI stands in for the store backend. Replies are keyed by
// "METHOD /path"; unknown routes answer 404.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	replies map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	call := key
	if r.Method == http.MethodPut || (r.Method == http.MethodPost && !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")) {
		b, _ := io.ReadAll(r.Body)
		call += " " + strings.TrimSpace(string(b))
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	body, ok := f.replies[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"not found"}`)
		return
	}
	io.WriteString(w, body)
}

func (f *fakeAPI) called(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

type testApp struct {
	app    *application
	api    *fakeAPI
	srv    *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T, replies map[string]string) *testApp {
	t.Helper()

	api := &fakeAPI{replies: replies}
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	logger := zap.NewNop().Sugar()
	client, err := backend.New(apiSrv.URL, logger, backend.WithHTTPClient(apiSrv.Client()))
	if err != nil {
		t.Fatal(err)
	}
	renderer, err := web.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	deps := consoleBackend(client)

	app := &application{
		config: config{
			Env:  "development",
			Auth: authConfig{User: "admin", Pass: "secret"},
			RateLimiter: ratelimiter.Config{
				RequestsPerTimeFrame: 100,
				TimeFrame:            time.Minute,
				Enabled:              true,
			},
		},
		logger:   logger,
		backend:  client,
		renderer: renderer,
		sessions: session.New(func() *console.Workspace {
			return console.NewWorkspace(deps, logger)
		}, time.Hour, false),
		rateLimiter: ratelimiter.NewFixedWindow(100, time.Minute),
	}

	srv := httptest.NewServer(app.mount())
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	return &testApp{
		app: app,
		api: api,
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (ta *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ta.client.Get(ta.srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	return resp, readBody(t, resp)
}

func (ta *testApp) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := ta.client.PostForm(ta.srv.URL+path, form)
	if err != nil {
		t.Fatal(err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

const productList = `{"results":[{"_id":"p1","productType":"Single","category":"Candles","name_en":"Amber Jar","price_egp":120,"stock":3,"status":"Active"}]}`

func TestProductsPage(t *testing.T) {
	ta := newTestApp(t, map[string]string{"GET /api/products": productList})

	resp, body := ta.get(t, "/products")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"Amber Jar", "120.00 EGP", "Add New Product"} {
		if !strings.Contains(body, want) {
			t.Errorf("page is missing %q", want)
		}
	}

	ta.get(t, "/products")
	if n := len(ta.api.called("GET /api/products")); n != 1 {
		t.Fatalf("product list fetched %d times, want 1", n)
	}
}

func TestRootRedirectsToProducts(t *testing.T) {
	ta := newTestApp(t, nil)

	resp, _ := ta.get(t, "/")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/products" {
		t.Fatalf("status = %d, location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestProductSubmitWithoutImagesMakesNoCall(t *testing.T) {
	ta := newTestApp(t, map[string]string{"GET /api/products": productList})

	resp, _ := ta.post(t, "/products/form", url.Values{
		"action":      {"submit"},
		"productType": {"Single"},
		"category":    {"Soap"},
		"name_en":     {"Olive Soap"},
		"price_egp":   {"80"},
		"stock":       {"5"},
		"status":      {"Active"},
		"scents":      {"Rose, Vanilla"},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if calls := ta.api.called("POST"); len(calls) != 0 {
		t.Fatalf("backend called: %v", calls)
	}

	_, body := ta.get(t, "/products")
	if !strings.Contains(body, "Please upload at least one image for new products.") {
		t.Fatal("missing image message not shown")
	}
	if !strings.Contains(body, `value="Olive Soap"`) {
		t.Fatal("typed name was lost")
	}
}

func TestProductSubmitWithRefusedImageStops(t *testing.T) {
	ta := newTestApp(t, map[string]string{
		"GET /api/products":    productList,
		"PUT /api/products/p1": `{"success":true}`,
	})
	ta.get(t, "/products/p1/edit")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"action":      "submit",
		"productType": "Single",
		"category":    "Candles",
		"name_en":     "Amber Jar",
		"status":      "Active",
	} {
		mw.WriteField(k, v)
	}
	part, err := mw.CreateFormFile("images", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(part, "plain text")
	mw.Close()

	resp, err := ta.client.Post(ta.srv.URL+"/products/form", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if calls := ta.api.called("PUT"); len(calls) != 0 {
		t.Fatalf("submitted without the refused file: %v", calls)
	}

	_, body := ta.get(t, "/products")
	if !strings.Contains(body, "Only JPEG, PNG or WebP images can be uploaded.") {
		t.Fatal("refusal message was replaced")
	}
}

func TestProductFormButtons(t *testing.T) {
	ta := newTestApp(t, nil)

	ta.post(t, "/products/form", url.Values{"productType": {"Bundle"}, "action": {"add-item"}})
	_, body := ta.get(t, "/products")
	if !strings.Contains(body, "Item #4") || !strings.Contains(body, `value="Item 4"`) {
		t.Fatal("bundle item not added")
	}

	ta.post(t, "/products/form", url.Values{"productType": {"Bundle"}, "action": {"remove-item:0"}})
	_, body = ta.get(t, "/products")
	if strings.Contains(body, "Item #4") || strings.Contains(body, "Big Jar Candle 1") {
		t.Fatal("bundle item not removed")
	}
}

func TestDeleteProductRequiresConfirmation(t *testing.T) {
	ta := newTestApp(t, map[string]string{
		"GET /api/products":       productList,
		"DELETE /api/products/p1": `{"success":true}`,
	})

	resp, _ := ta.post(t, "/products/p1/delete", nil)
	if loc := resp.Header.Get("Location"); resp.StatusCode != http.StatusSeeOther || loc != "/products/p1/delete" {
		t.Fatalf("status = %d, location = %q", resp.StatusCode, loc)
	}
	if calls := ta.api.called("DELETE"); len(calls) != 0 {
		t.Fatalf("deleted without confirmation: %v", calls)
	}

	_, body := ta.get(t, "/products/p1/delete")
	if !strings.Contains(body, "Amber Jar") || !strings.Contains(body, `name="confirm" value="yes"`) {
		t.Fatalf("confirm page = %s", body)
	}

	ta.post(t, "/products/p1/delete", url.Values{"confirm": {"yes"}})
	if calls := ta.api.called("DELETE"); len(calls) != 1 || calls[0] != "DELETE /api/products/p1" {
		t.Fatalf("calls = %v", calls)
	}

	if resp, _ := ta.get(t, "/products/zz/delete"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product status = %d", resp.StatusCode)
	}
}

func TestOrderStatusConfirmation(t *testing.T) {
	ta := newTestApp(t, map[string]string{
		"GET /api/orders": `[{"_id":"65f0c0ffee1234abcdef","status":"Pending","customerInfo":{"name":"Mona"}}]`,
		"PUT /api/orders/65f0c0ffee1234abcdef/status": `{"success":true,"order":{"_id":"65f0c0ffee1234abcdef","status":"Shipped"}}`,
	})

	resp, body := ta.post(t, "/orders/65f0c0ffee1234abcdef/status", url.Values{"status": {"Shipped"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Update order abcdef status to") || !strings.Contains(body, `name="status" value="Shipped"`) {
		t.Fatalf("confirm page = %s", body)
	}
	if calls := ta.api.called("PUT"); len(calls) != 0 {
		t.Fatalf("updated without confirmation: %v", calls)
	}

	ta.post(t, "/orders/65f0c0ffee1234abcdef/status", url.Values{"status": {"Shipped"}, "confirm": {"yes"}})
	calls := ta.api.called("PUT")
	if len(calls) != 1 || calls[0] != `PUT /api/orders/65f0c0ffee1234abcdef/status {"status":"Shipped"}` {
		t.Fatalf("calls = %v", calls)
	}

	_, body = ta.get(t, "/orders")
	if !strings.Contains(body, "Order abcdef status updated.") {
		t.Fatal("success message not shown")
	}

	if resp, _ := ta.post(t, "/orders/65f0c0ffee1234abcdef/status", url.Values{"status": {"Lost"}}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status = %d", resp.StatusCode)
	}
}

func TestOrderDetail(t *testing.T) {
	ta := newTestApp(t, map[string]string{
		"GET /api/orders": `[{"_id":"o1","status":"Pending","customerInfo":{"name":"Mona","city":"Giza"},"items":[{"name":"Amber Jar","quantity":2,"price":120}]}]`,
	})

	_, body := ta.get(t, "/orders/o1")
	if !strings.Contains(body, "Order #o1") || !strings.Contains(body, "Amber Jar") {
		t.Fatalf("detail not shown: %s", body)
	}
	if resp, _ := ta.get(t, "/orders/missing"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

const categoryList = `[{"_id":"a","name":"Candles","sortOrder":0},{"_id":"b","name":"Soap","sortOrder":1}]`

func TestMoveCategory(t *testing.T) {
	ta := newTestApp(t, map[string]string{
		"GET /api/categories":   categoryList,
		"PUT /api/categories/a": `{}`,
		"PUT /api/categories/b": `{}`,
	})

	resp, _ := ta.post(t, "/categories/b/move/up", nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := strings.Join(ta.api.called("PUT"), "; ")
	if got != `PUT /api/categories/b {"sortOrder":0}; PUT /api/categories/a {"sortOrder":1}` {
		t.Fatalf("calls = %s", got)
	}

	if resp, _ := ta.post(t, "/categories/b/move/sideways", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("bad direction status = %d", resp.StatusCode)
	}
}

func TestCategoryCreateAndEdit(t *testing.T) {
	ta := newTestApp(t, map[string]string{
		"GET /api/categories":   categoryList,
		"POST /api/categories":  `{}`,
		"PUT /api/categories/a": `{}`,
	})

	_, body := ta.get(t, "/categories?new=1")
	if !strings.Contains(body, `name="sortOrder" value="2"`) {
		t.Fatal("new category should default to the next sort order")
	}

	resp, _ := ta.post(t, "/categories", url.Values{"name": {"Sets"}, "sortOrder": {"2"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if calls := ta.api.called("POST"); len(calls) != 1 || calls[0] != `POST /api/categories {"name":"Sets","sortOrder":2}` {
		t.Fatalf("calls = %v", calls)
	}

	_, body = ta.get(t, "/categories?edit=a")
	if !strings.Contains(body, `action="/categories/a"`) || !strings.Contains(body, `value="Candles"`) {
		t.Fatal("edit form not shown")
	}
	if resp, _ := ta.get(t, "/categories?edit=zz"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestCategoryBlankNameShowsFieldError(t *testing.T) {
	ta := newTestApp(t, map[string]string{"GET /api/categories": categoryList})

	resp, body := ta.post(t, "/categories", url.Values{"name": {"  "}, "sortOrder": {"2"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `<small class="err">This field is required.</small>`) {
		t.Fatal("field message not shown next to the name")
	}
	if calls := ta.api.called("POST"); len(calls) != 0 {
		t.Fatalf("backend called: %v", calls)
	}
}

func TestShippingBlankFeeIsRejected(t *testing.T) {
	ta := newTestApp(t, map[string]string{"GET /api/shipping-rates": `[]`})

	resp, body := ta.post(t, "/shipping", url.Values{"city": {"Cairo"}, "shippingFee": {""}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Please fill in both city and shipping fee") {
		t.Fatal("invalid message not shown")
	}
	if !strings.Contains(body, `value="Cairo"`) {
		t.Fatal("typed city was lost")
	}
	if calls := ta.api.called("POST"); len(calls) != 0 {
		t.Fatalf("backend called: %v", calls)
	}
}

// The fake answers unknown routes with 404 {"message":"not found"}.
func TestDiscountBackendRejection(t *testing.T) {
	ta := newTestApp(t, map[string]string{
		"GET /api/discounts":  `[]`,
		"GET /api/categories": categoryList,
		"GET /api/products":   productList,
	})

	resp, body := ta.post(t, "/discounts", url.Values{
		"code":      {"summer"},
		"type":      {"percentage"},
		"value":     {"20"},
		"appliesTo": {"entire"},
		"status":    {"active"},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	calls := ta.api.called("POST")
	if len(calls) != 1 || !strings.Contains(calls[0], `"code":"SUMMER"`) || !strings.Contains(calls[0], `"value":20`) {
		t.Fatalf("calls = %v", calls)
	}
	if !strings.Contains(body, "not found") || !strings.Contains(body, "Amber Jar") {
		t.Fatal("expected the backend message and the product picker")
	}
}

func TestHealthCheckNeedsBasicAuth(t *testing.T) {
	ta := newTestApp(t, nil)

	resp, _ := ta.get(t, "/v1/health")
	if resp.StatusCode != http.StatusUnauthorized || resp.Header.Get("WWW-Authenticate") == "" {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ta.srv.URL+"/v1/health", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")))
	resp, err := ta.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:wrong")))
	resp, err = ta.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", resp.StatusCode)
	}
}

func TestRateLimiterCountsPostsOnly(t *testing.T) {
	ta := newTestApp(t, map[string]string{"GET /api/products": productList})
	ta.app.rateLimiter = ratelimiter.NewFixedWindow(1, time.Minute)

	ta.get(t, "/products")
	ta.get(t, "/products")
	if resp, _ := ta.post(t, "/products/form", url.Values{"action": {"add-variant"}}); resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("first post status = %d", resp.StatusCode)
	}
	resp, _ := ta.post(t, "/products/form", url.Values{"action": {"add-variant"}})
	if resp.StatusCode != http.StatusTooManyRequests || resp.Header.Get("Retry-After") == "" {
		t.Fatalf("second post status = %d", resp.StatusCode)
	}
}

func TestSessionsAreSeparate(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.post(t, "/products/form", url.Values{"name_en": {"Private Draft"}})

	other, _ := cookiejar.New(nil)
	c := &http.Client{Jar: other}
	resp, err := c.Get(ta.srv.URL + "/products")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(readBody(t, resp), "Private Draft") {
		t.Fatal("draft leaked into another session")
	}
	if ta.app.sessions.Len() != 2 {
		t.Fatalf("sessions = %d", ta.app.sessions.Len())
	}
}

func TestUnknownPage(t *testing.T) {
	ta := newTestApp(t, nil)
	resp, body := ta.get(t, "/nowhere")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "Not found") {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
